package choreography

import (
	"errors"
	"math"
	"slices"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/arc"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
	"github.com/go-drift/choreo/pkg/graphics"
	"github.com/go-drift/choreo/pkg/stagger"
)

var errSelfJoin = errors.New("cannot join a chain with itself or nil")

// RepeatMode selects how a repeating segment replays.
type RepeatMode int

const (
	// Restart replays every pass from the start.
	Restart RepeatMode = iota + 1
	// Reverse alternates forward and backward passes.
	Reverse
)

// Infinite repeats until the global fraction reaches 1.
const Infinite = -1

// Repeat describes extra passes a segment plays inside its window.
type Repeat struct {
	Mode  RepeatMode
	Count int
}

type arcSpec struct {
	kind    arc.Kind
	control *graphics.Point
}

type trigger struct {
	at float64
	fn func(*Segment)
}

// Segment is one timed unit of a chain: a set of tracks applied to targets
// over a duration, started at an offset of its parent's duration.
type Segment struct {
	chain    *Chain
	id       SegmentID
	targets  []*Target
	snapshot []Properties

	tracks    [propertyCount]propertyTrack
	keyframes [propertyCount]*Keyframes

	duration time.Duration
	delay    time.Duration
	offset   float64
	curve    animation.Curve
	stagger  *stagger.Spec
	arc      *arcSpec
	repeat   Repeat

	reverseFlag bool
	reverseOf   *Segment

	onStart    []func(*Segment)
	onEnd      []func(*Segment)
	onProgress []func(*Segment, float64)
	triggers   []trigger
}

// ID returns the segment id.
func (s *Segment) ID() SegmentID { return s.id }

// Chain returns the owning chain.
func (s *Segment) Chain() *Chain { return s.chain }

// Targets returns the animated targets.
func (s *Segment) Targets() []*Target { return slices.Clone(s.targets) }

// TargetIDs returns the ids of the animated targets.
func (s *Segment) TargetIDs() []TargetID { return targetIDs(s.targets) }

// Duration returns the segment's own play time.
func (s *Segment) Duration() time.Duration { return s.duration }

// Delay returns the extra delay before the segment starts.
func (s *Segment) Delay() time.Duration { return s.delay }

// Offset returns the start point as a fraction of the parent's duration.
func (s *Segment) Offset() float64 { return s.offset }

// Curve returns the segment curve, or nil when the chain default applies.
func (s *Segment) Curve() animation.Curve { return s.curve }

// StaggerSpec returns the stagger, or nil.
func (s *Segment) StaggerSpec() *stagger.Spec { return s.stagger }

// RepeatSpec returns the repeat settings.
func (s *Segment) RepeatSpec() Repeat { return s.repeat }

// IsReversed reports whether the segment was created by a reverse call.
func (s *Segment) IsReversed() bool { return s.reverseFlag }

// Parent returns the previous segment of the chain, or nil for the head.
func (s *Segment) Parent() *Segment {
	i := s.chain.indexOf(s)
	if i <= 0 {
		return nil
	}
	return s.chain.segments[i-1]
}

// Child returns the next segment of the chain, or nil for the tail.
func (s *Segment) Child() *Segment {
	i := s.chain.indexOf(s)
	if i < 0 || i+1 >= len(s.chain.segments) {
		return nil
	}
	return s.chain.segments[i+1]
}

// Properties lists the properties the segment animates, in property order.
func (s *Segment) Properties() []Property {
	var out []Property
	for p := range propertyCount {
		if s.tracks[p] != nil || s.keyframes[p] != nil {
			out = append(out, p)
		}
	}
	return out
}

// Touches reports whether the segment animates any of ids.
func (s *Segment) Touches(ids ...TargetID) bool {
	return touches(s.targets, ids)
}

// edit reports whether an edit may proceed.
func (s *Segment) edit(op string) bool {
	return s.chain.mutate(op) == nil
}

func (s *Segment) invalid(field string, v float64) *Segment {
	s.chain.fail(&choreoerrors.InvalidOffsetError{Segment: int(s.id), Field: field, Value: v})
	return s
}

func validOffset(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// WithDuration sets the play time. Negative durations are rejected.
func (s *Segment) WithDuration(d time.Duration) *Segment {
	if d < 0 {
		return s.invalid("duration", float64(d)/float64(time.Millisecond))
	}
	if s.edit("WithDuration") {
		s.duration = d
	}
	return s
}

// WithDelay adds a delay before the segment starts. Negative delays are
// rejected.
func (s *Segment) WithDelay(d time.Duration) *Segment {
	if d < 0 {
		return s.invalid("delay", float64(d)/float64(time.Millisecond))
	}
	if s.edit("WithDelay") {
		s.delay = d
	}
	return s
}

// WithOffset sets the start point as a fraction of the parent's duration.
// Negative offsets are rejected; the head ignores its offset.
func (s *Segment) WithOffset(offset float64) *Segment {
	if !validOffset(offset) {
		return s.invalid("offset", offset)
	}
	if s.edit("WithOffset") {
		s.offset = offset
	}
	return s
}

// WithCurve sets the curve for every track without its own.
func (s *Segment) WithCurve(c animation.Curve) *Segment {
	if s.edit("WithCurve") {
		s.curve = c
	}
	return s
}

// WithStagger spreads the segment over its targets by distance.
func (s *Segment) WithStagger(spec stagger.Spec) *Segment {
	if err := spec.Validate(); err != nil {
		var ioe *choreoerrors.InvalidOffsetError
		if errors.As(err, &ioe) {
			ioe.Segment = int(s.id)
		}
		s.chain.fail(err)
		return s
	}
	if s.edit("WithStagger") {
		s.stagger = &spec
	}
	return s
}

// WithArc makes translation follow a curve whose control point is chosen
// by kind.
func (s *Segment) WithArc(kind arc.Kind) *Segment {
	if s.edit("WithArc") {
		s.arc = &arcSpec{kind: kind}
	}
	return s
}

// WithControlPoint makes translation follow a curve through an explicit
// control point.
func (s *Segment) WithControlPoint(x, y float64) *Segment {
	if s.edit("WithControlPoint") {
		p := graphics.Pt(x, y)
		if s.arc == nil {
			s.arc = &arcSpec{}
		}
		s.arc.control = &p
	}
	return s
}

// WithRepeat plays count extra passes inside the segment's window, or
// repeats until the end of the timeline when count is Infinite.
func (s *Segment) WithRepeat(mode RepeatMode, count int) *Segment {
	if count < Infinite {
		return s.invalid("repeat", float64(count))
	}
	if s.edit("WithRepeat") {
		s.repeat = Repeat{Mode: mode, Count: count}
	}
	return s
}

// Yoyo plays forward then back within the segment's window.
func (s *Segment) Yoyo() *Segment {
	return s.WithRepeat(Reverse, 1)
}

// OnStart registers fn to run once when the segment starts.
func (s *Segment) OnStart(fn func(*Segment)) *Segment {
	s.onStart = append(s.onStart, fn)
	return s
}

// OnEnd registers fn to run once when the segment ends.
func (s *Segment) OnEnd(fn func(*Segment)) *Segment {
	s.onEnd = append(s.onEnd, fn)
	return s
}

// OnProgress registers fn to receive the segment's local fraction on every
// tick it is active.
func (s *Segment) OnProgress(fn func(*Segment, float64)) *Segment {
	s.onProgress = append(s.onProgress, fn)
	return s
}

// WithOffsetTrigger runs fn once when the local fraction reaches at, which
// is clamped to [0, 1].
func (s *Segment) WithOffsetTrigger(at float64, fn func(*Segment)) *Segment {
	s.triggers = append(s.triggers, trigger{at: min(max(at, 0), 1), fn: fn})
	return s
}

// Float returns the track of a scalar property, creating it on first use.
// When p is not scalar the chain records an InvalidPropertyError, surfaced
// by Build, and a detached track is returned.
func (s *Segment) Float(p Property) *Track[float64] {
	if !s.scalar("Float", p) {
		return newTrack(p, floatOps)
	}
	return trackFor(s, p, floatOps)
}

func (s *Segment) scalar(op string, p Property) bool {
	if p.Scalar() {
		return true
	}
	s.chain.fail(&choreoerrors.InvalidPropertyError{Segment: int(s.id), Property: p.String(), Op: op})
	return false
}

// ColorTrack returns the color track.
func (s *Segment) ColorTrack() *Track[graphics.Color] {
	return trackFor(s, Color, colorOps)
}

// Corners returns the corner radii track.
func (s *Segment) Corners() *Track[graphics.CornerRadii] {
	return trackFor(s, CornerRadii, cornerOps)
}

// MarginTrack returns the margins track.
func (s *Segment) MarginTrack() *Track[graphics.Insets] {
	return trackFor(s, Margins, insetOps)
}

// PaddingTrack returns the paddings track.
func (s *Segment) PaddingTrack() *Track[graphics.Insets] {
	return trackFor(s, Paddings, insetOps)
}

// trackFor returns the segment's track for p. A rejected edit yields a
// detached track so the segment is left untouched.
func trackFor[T comparable](s *Segment, p Property, ops valueOps[T]) *Track[T] {
	if !s.edit("Track") {
		return newTrack(p, ops)
	}
	if t, ok := s.tracks[p].(*Track[T]); ok {
		return t
	}
	t := newTrack(p, ops)
	s.tracks[p] = t
	return t
}

// Values animates a scalar property through breakpoints. With two or more
// values it replaces the property's from/to track.
func (s *Segment) Values(p Property, values ...float64) *Segment {
	if s.scalar("Values", p) && s.edit("Values") {
		s.keyframes[p] = &Keyframes{Property: p, Values: slices.Clone(values)}
	}
	return s
}

// AlphaTo animates opacity to v.
func (s *Segment) AlphaTo(v float64) *Segment {
	s.Float(Alpha).SetTo(v)
	return s
}

// ScaleTo animates both scale axes.
func (s *Segment) ScaleTo(x, y float64) *Segment {
	s.Float(ScaleX).SetTo(x)
	s.Float(ScaleY).SetTo(y)
	return s
}

// RotateTo animates the in-plane rotation, in degrees.
func (s *Segment) RotateTo(deg float64) *Segment {
	s.Float(Rotation).SetTo(deg)
	return s
}

// TranslateTo animates the x and y translation in a straight line.
func (s *Segment) TranslateTo(x, y float64) *Segment {
	s.Float(TranslationX).SetTo(x)
	s.Float(TranslationY).SetTo(y)
	return s
}

// ArcTranslateTo animates the translation along an outer arc unless an arc
// was already configured.
func (s *Segment) ArcTranslateTo(x, y float64) *Segment {
	if s.arc == nil {
		s.WithArc(arc.Outer)
	}
	return s.TranslateTo(x, y)
}

// PositionTo animates the layout position.
func (s *Segment) PositionTo(x, y float64) *Segment {
	s.Float(PositionX).SetTo(x)
	s.Float(PositionY).SetTo(y)
	return s
}

// ResizeTo animates width and height on resizable targets.
func (s *Segment) ResizeTo(w, h float64) *Segment {
	s.Float(Width).SetTo(w)
	s.Float(Height).SetTo(h)
	return s
}

// ColorTo animates the color on colorable targets.
func (s *Segment) ColorTo(c graphics.Color) *Segment {
	s.ColorTrack().SetTo(c)
	return s
}

// CornerRadiiTo animates the corner radii on targets with mutable corners.
func (s *Segment) CornerRadiiTo(r graphics.CornerRadii) *Segment {
	s.Corners().SetTo(r)
	return s
}

// MarginsTo animates the margins.
func (s *Segment) MarginsTo(in graphics.Insets) *Segment {
	s.MarginTrack().SetTo(in)
	return s
}

// PaddingsTo animates the paddings.
func (s *Segment) PaddingsTo(in graphics.Insets) *Segment {
	s.PaddingTrack().SetTo(in)
	return s
}

// AddTo animates a scalar property from its start value by delta.
func (s *Segment) AddTo(p Property, delta float64) *Segment {
	s.Float(p).Add(delta)
	return s
}

// MultiplyBy animates a scalar property to its start value times k.
func (s *Segment) MultiplyBy(p Property, k float64) *Segment {
	s.Float(p).Multiply(k)
	return s
}
