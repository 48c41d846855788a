package choreography

import (
	"github.com/go-drift/choreo/pkg/graphics"
)

// TargetID identifies an animated target.
type TargetID string

// Capabilities declares which optional properties a target supports. Tracks
// for unsupported properties are skipped for that target.
type Capabilities struct {
	MutableCorners bool
	Resizable      bool
	Colorable      bool
	HasMargins     bool
	HasPaddings    bool
}

// AllCapabilities enables every optional property.
var AllCapabilities = Capabilities{
	MutableCorners: true,
	Resizable:      true,
	Colorable:      true,
	HasMargins:     true,
	HasPaddings:    true,
}

// Supports reports whether c includes every capability in need.
func (c Capabilities) Supports(need Capabilities) bool {
	return (!need.MutableCorners || c.MutableCorners) &&
		(!need.Resizable || c.Resizable) &&
		(!need.Colorable || c.Colorable) &&
		(!need.HasMargins || c.HasMargins) &&
		(!need.HasPaddings || c.HasPaddings)
}

// Target is the already-resolved description of something being animated:
// its identity, layout bounds, capabilities and current property values.
// Segments snapshot Props when they are authored.
type Target struct {
	ID     TargetID
	Bounds graphics.Rect
	Caps   Capabilities
	Props  Properties
}

// NewTarget returns a target with default properties derived from bounds.
func NewTarget(id TargetID, bounds graphics.Rect, caps Capabilities) *Target {
	return &Target{ID: id, Bounds: bounds, Caps: caps, Props: DefaultProperties(bounds)}
}

// SetProperty updates the target's current value, so segments authored
// after playback start from where the target ended up.
func (t *Target) SetProperty(p Property, v any) {
	_ = t.Props.Set(p, v)
}

// Supports reports whether the target can animate p.
func (t *Target) Supports(p Property) bool {
	return t.Caps.Supports(p.requires())
}

// Animatable receives evaluated property values.
type Animatable interface {
	SetProperty(p Property, v any)
}

// Apply routes every sample to the Animatable registered for its target, in
// order. Samples for unknown targets are dropped.
func Apply(samples []Sample, targets map[TargetID]Animatable) {
	for _, s := range samples {
		if a, ok := targets[s.Target]; ok {
			a.SetProperty(s.Property, s.Value)
		}
	}
}

func touches(targets []*Target, ids []TargetID) bool {
	for _, t := range targets {
		for _, id := range ids {
			if t.ID == id {
				return true
			}
		}
	}
	return false
}

func targetIDs(targets []*Target) []TargetID {
	ids := make([]TargetID, len(targets))
	for i, t := range targets {
		ids[i] = t.ID
	}
	return ids
}
