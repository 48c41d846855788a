// Package document reads and writes declarative choreographies.
//
// A document lists targets with their bounds, capabilities and starting
// property values, then the segments of one chain in authoring order:
//
//	version: v1.0.0
//	defaults: {duration: 300ms, curve: standard}
//	targets:
//	  - {id: card, bounds: [0, 0, 100, 100], caps: [color]}
//	segments:
//	  - {targets: [card], duration: 500ms, tracks: {alpha: {to: 0.5}}}
//	  - {mode: then, arc: {kind: outer}, tracks: {translationX: {to: 120}}}
//	  - {mode: reverse}
//
// [Document.Chain] turns a document into a [choreography.Chain].
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

// Version is the newest document format this package reads. Documents must
// declare a version with the same major number.
const Version = "v1.0.0"

// Document is one choreography: its targets and the segments of its chain.
type Document struct {
	Version  string    `yaml:"version"`
	Name     string    `yaml:"name,omitempty"`
	Defaults Defaults  `yaml:"defaults,omitempty"`
	Targets  []Target  `yaml:"targets"`
	Segments []Segment `yaml:"segments"`
}

// Defaults configures the chain.
type Defaults struct {
	Duration Duration `yaml:"duration,omitempty"`
	Curve    string   `yaml:"curve,omitempty"`
	// Inherit controls whether segments copy their parent's duration,
	// curve and arc. Unset means true.
	Inherit *bool `yaml:"inherit,omitempty"`
}

// Target describes one animated element.
type Target struct {
	ID string `yaml:"id"`
	// Bounds is left, top, width, height.
	Bounds [4]float64 `yaml:"bounds"`
	// Caps lists optional capabilities: corners, resize, color, margins,
	// paddings, or all.
	Caps []string `yaml:"caps,omitempty"`
	// Props overrides starting property values by property name.
	Props map[string]yaml.Node `yaml:"props,omitempty"`
}

// Segment describes one segment. Mode says how it attaches to the
// previous segment and is ignored on the first one.
type Segment struct {
	Mode      string               `yaml:"mode,omitempty"`
	Offset    *float64             `yaml:"offset,omitempty"`
	Targets   []string             `yaml:"targets,omitempty"`
	Duration  *Duration            `yaml:"duration,omitempty"`
	Delay     Duration             `yaml:"delay,omitempty"`
	Curve     string               `yaml:"curve,omitempty"`
	Tracks    map[string]Track     `yaml:"tracks,omitempty"`
	Keyframes map[string][]float64 `yaml:"keyframes,omitempty"`
	Arc       *Arc                 `yaml:"arc,omitempty"`
	Stagger   *Stagger             `yaml:"stagger,omitempty"`
	Repeat    *Repeat              `yaml:"repeat,omitempty"`
}

// Track sets the values of one property. Values are numbers for scalar
// properties, "#RRGGBB" or "#AARRGGBB" strings for color, and one number or
// a list for corner radii (8) and insets (4).
type Track struct {
	From     *yaml.Node `yaml:"from,omitempty"`
	To       *yaml.Node `yaml:"to,omitempty"`
	Add      *yaml.Node `yaml:"add,omitempty"`
	Multiply *float64   `yaml:"multiply,omitempty"`
	Curve    string     `yaml:"curve,omitempty"`
}

// Arc makes translation follow a curve.
type Arc struct {
	Kind    string      `yaml:"kind,omitempty"`
	Control *[2]float64 `yaml:"control,omitempty"`
}

// Stagger spreads a segment over its targets.
type Stagger struct {
	Offset     float64     `yaml:"offset"`
	Multiplier float64     `yaml:"multiplier,omitempty"`
	Kind       string      `yaml:"kind,omitempty"`
	Direction  string      `yaml:"direction,omitempty"`
	Epicenter  *[2]float64 `yaml:"epicenter,omitempty"`
}

// Repeat replays a segment within its window.
type Repeat struct {
	Mode     string `yaml:"mode,omitempty"`
	Count    int    `yaml:"count,omitempty"`
	Infinite bool   `yaml:"infinite,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("250ms") or
// a number of milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	if n.Tag == "!!int" || n.Tag == "!!float" {
		var ms float64
		if err := n.Decode(&ms); err != nil {
			return err
		}
		*d = Duration(ms * float64(time.Millisecond))
		return nil
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Load decodes and validates a document. Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
		return nil, docError("document.Load", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Parse is Load over a byte slice.
func Parse(data []byte) (*Document, error) {
	return Load(bytes.NewReader(data))
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, docError("document.Marshal", err)
	}
	if err := enc.Close(); err != nil {
		return nil, docError("document.Marshal", err)
	}
	return buf.Bytes(), nil
}

// Validate checks the version and every reference in the document.
func (d *Document) Validate() error {
	const op = "document.Validate"
	switch {
	case d.Version == "":
		return docError(op, errors.New("missing version"))
	case !semver.IsValid(d.Version):
		return docError(op, fmt.Errorf("invalid version %q", d.Version))
	case semver.Major(d.Version) != semver.Major(Version):
		return docError(op, fmt.Errorf("unsupported version %s, want %s.x.y", d.Version, semver.Major(Version)))
	case len(d.Segments) == 0:
		return docError(op, errors.New("no segments"))
	}

	ids := make(map[string]bool, len(d.Targets))
	for i, t := range d.Targets {
		if t.ID == "" {
			return docError(op, fmt.Errorf("target %d: missing id", i))
		}
		if ids[t.ID] {
			return docError(op, fmt.Errorf("target %q: duplicate id", t.ID))
		}
		ids[t.ID] = true
		if _, err := parseCaps(t.Caps); err != nil {
			return docError(op, fmt.Errorf("target %q: %w", t.ID, err))
		}
	}

	for i, s := range d.Segments {
		if i == 0 && len(s.Targets) == 0 {
			return docError(op, errors.New("segment 0: the first segment needs targets"))
		}
		if _, ok := modes[s.Mode]; !ok {
			return docError(op, fmt.Errorf("segment %d: unknown mode %q", i, s.Mode))
		}
		if needsOffset(s.Mode) && s.Offset == nil {
			return docError(op, fmt.Errorf("segment %d: mode %q needs an offset", i, s.Mode))
		}
		for _, id := range s.Targets {
			if !ids[id] {
				return docError(op, fmt.Errorf("segment %d: unknown target %q", i, id))
			}
		}
	}
	return nil
}

func docError(op string, err error) error {
	return &choreoerrors.ChoreoError{Op: op, Kind: choreoerrors.KindDocument, Err: err}
}
