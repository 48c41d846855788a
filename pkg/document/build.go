package document

import (
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/arc"
	"github.com/go-drift/choreo/pkg/choreography"
	"github.com/go-drift/choreo/pkg/graphics"
	"github.com/go-drift/choreo/pkg/stagger"
)

type attach func(s *choreography.Segment, offset float64, targets []*choreography.Target) *choreography.Segment

var modes = map[string]attach{
	"": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.ThenAnimate(t...)
	},
	"then": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.ThenAnimate(t...)
	},
	"also": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.AlsoAnimate(t...)
	},
	"after": func(s *choreography.Segment, off float64, t []*choreography.Target) *choreography.Segment {
		return s.AnimateAfter(off, t...)
	},
	"and": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.AndAnimate(t...)
	},
	"and-after": func(s *choreography.Segment, off float64, t []*choreography.Target) *choreography.Segment {
		return s.AndAnimateAfter(off, t...)
	},
	"reverse": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.ReverseAnimate(t...)
	},
	"and-reverse": func(s *choreography.Segment, _ float64, t []*choreography.Target) *choreography.Segment {
		return s.AndReverseAnimate(t...)
	},
}

func needsOffset(mode string) bool {
	return mode == "after" || mode == "and-after"
}

var capNames = map[string]choreography.Capabilities{
	"corners":  {MutableCorners: true},
	"resize":   {Resizable: true},
	"color":    {Colorable: true},
	"margins":  {HasMargins: true},
	"paddings": {HasPaddings: true},
	"all":      choreography.AllCapabilities,
}

func parseCaps(names []string) (choreography.Capabilities, error) {
	var c choreography.Capabilities
	for _, n := range names {
		add, ok := capNames[n]
		if !ok {
			return c, fmt.Errorf("unknown capability %q", n)
		}
		c.MutableCorners = c.MutableCorners || add.MutableCorners
		c.Resizable = c.Resizable || add.Resizable
		c.Colorable = c.Colorable || add.Colorable
		c.HasMargins = c.HasMargins || add.HasMargins
		c.HasPaddings = c.HasPaddings || add.HasPaddings
	}
	return c, nil
}

// BuildTargets creates the document's targets with their starting values.
func (d *Document) BuildTargets() (map[choreography.TargetID]*choreography.Target, error) {
	const op = "document.BuildTargets"
	out := make(map[choreography.TargetID]*choreography.Target, len(d.Targets))
	for _, t := range d.Targets {
		caps, err := parseCaps(t.Caps)
		if err != nil {
			return nil, docError(op, fmt.Errorf("target %q: %w", t.ID, err))
		}
		b := t.Bounds
		target := choreography.NewTarget(choreography.TargetID(t.ID), graphics.RectFromLTWH(b[0], b[1], b[2], b[3]), caps)
		for _, name := range sortedKeys(t.Props) {
			p, err := choreography.ParseProperty(name)
			if err != nil {
				return nil, docError(op, fmt.Errorf("target %q: %w", t.ID, err))
			}
			n := t.Props[name]
			v, err := decodeValue(p, &n)
			if err != nil {
				return nil, docError(op, fmt.Errorf("target %q: %s: %w", t.ID, name, err))
			}
			target.SetProperty(p, v)
		}
		out[target.ID] = target
	}
	return out, nil
}

// Chain builds the document's chain. opts are applied before the
// document's own defaults.
func (d *Document) Chain(opts ...choreography.Option) (*choreography.Chain, error) {
	const op = "document.Chain"
	if err := d.Validate(); err != nil {
		return nil, err
	}
	targets, err := d.BuildTargets()
	if err != nil {
		return nil, err
	}

	opts = slices.Clone(opts)
	if d.Defaults.Duration > 0 {
		opts = append(opts, choreography.WithDefaultDuration(time.Duration(d.Defaults.Duration)))
	}
	if d.Defaults.Curve != "" {
		c, err := animation.CurveByName(d.Defaults.Curve)
		if err != nil {
			return nil, docError(op, err)
		}
		opts = append(opts, choreography.WithDefaultCurve(c))
	}
	if d.Defaults.Inherit != nil {
		opts = append(opts, choreography.WithInheritance(*d.Defaults.Inherit))
	}
	chain := choreography.NewChain(opts...)

	var cur *choreography.Segment
	for i, spec := range d.Segments {
		ts := make([]*choreography.Target, len(spec.Targets))
		for j, id := range spec.Targets {
			ts[j] = targets[choreography.TargetID(id)]
		}
		offset := 0.0
		if spec.Offset != nil {
			offset = *spec.Offset
		}
		if cur == nil {
			cur = chain.Animate(ts...)
		} else {
			cur = modes[spec.Mode](cur, offset, ts)
			if spec.Offset != nil && !needsOffset(spec.Mode) {
				cur.WithOffset(offset)
			}
		}
		if err := configure(cur, spec); err != nil {
			return nil, docError(op, fmt.Errorf("segment %d: %w", i, err))
		}
	}
	if err := chain.Err(); err != nil {
		return nil, docError(op, err)
	}
	return chain, nil
}

func configure(s *choreography.Segment, spec Segment) error {
	if spec.Duration != nil {
		s.WithDuration(time.Duration(*spec.Duration))
	}
	if spec.Delay != 0 {
		s.WithDelay(time.Duration(spec.Delay))
	}
	if spec.Curve != "" {
		c, err := animation.CurveByName(spec.Curve)
		if err != nil {
			return err
		}
		s.WithCurve(c)
	}
	if a := spec.Arc; a != nil {
		kind, err := arc.ParseKind(a.Kind)
		if err != nil {
			return err
		}
		s.WithArc(kind)
		if a.Control != nil {
			s.WithControlPoint(a.Control[0], a.Control[1])
		}
	}
	if st := spec.Stagger; st != nil {
		kind, err := stagger.ParseKind(st.Kind)
		if err != nil {
			return err
		}
		dir, err := stagger.ParseDirection(st.Direction)
		if err != nil {
			return err
		}
		sp := stagger.Spec{Offset: st.Offset, Multiplier: st.Multiplier, Kind: kind, Direction: dir}
		if st.Epicenter != nil {
			p := graphics.Pt(st.Epicenter[0], st.Epicenter[1])
			sp.Epicenter = &p
		}
		s.WithStagger(sp)
	}
	if r := spec.Repeat; r != nil {
		mode := choreography.Restart
		switch r.Mode {
		case "", "restart":
		case "reverse":
			mode = choreography.Reverse
		default:
			return fmt.Errorf("unknown repeat mode %q", r.Mode)
		}
		count := r.Count
		if r.Infinite {
			count = choreography.Infinite
		}
		s.WithRepeat(mode, count)
	}

	for _, name := range sortedKeys(spec.Tracks) {
		p, err := choreography.ParseProperty(name)
		if err != nil {
			return err
		}
		if err := applyTrack(s, p, spec.Tracks[name]); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	for _, name := range sortedKeys(spec.Keyframes) {
		p, err := choreography.ParseProperty(name)
		if err != nil {
			return err
		}
		if !p.Scalar() {
			return fmt.Errorf("%s: keyframes need a scalar property", name)
		}
		s.Values(p, spec.Keyframes[name]...)
	}
	return nil
}

func applyTrack(s *choreography.Segment, p choreography.Property, spec Track) error {
	switch {
	case p.Scalar():
		return setTrack(s.Float(p), spec, decodeFloat)
	case p == choreography.Color:
		return setTrack(s.ColorTrack(), spec, decodeColor)
	case p == choreography.CornerRadii:
		return setTrack(s.Corners(), spec, decodeCorners)
	case p == choreography.Margins:
		return setTrack(s.MarginTrack(), spec, decodeInsets)
	case p == choreography.Paddings:
		return setTrack(s.PaddingTrack(), spec, decodeInsets)
	}
	return fmt.Errorf("unsupported property %v", p)
}

func setTrack[T comparable](tr *choreography.Track[T], spec Track, decode func(*yaml.Node) (T, error)) error {
	if spec.From != nil {
		v, err := decode(spec.From)
		if err != nil {
			return err
		}
		tr.SetFrom(v)
	}
	if spec.To != nil {
		v, err := decode(spec.To)
		if err != nil {
			return err
		}
		tr.SetTo(v)
	}
	if spec.Multiply != nil {
		tr.Multiply(*spec.Multiply)
	}
	if spec.Add != nil {
		v, err := decode(spec.Add)
		if err != nil {
			return err
		}
		tr.Add(v)
	}
	if spec.Curve != "" {
		c, err := animation.CurveByName(spec.Curve)
		if err != nil {
			return err
		}
		tr.WithCurve(c)
	}
	return nil
}

func decodeValue(p choreography.Property, n *yaml.Node) (any, error) {
	switch {
	case p.Scalar():
		return decodeFloat(n)
	case p == choreography.Color:
		return decodeColor(n)
	case p == choreography.CornerRadii:
		return decodeCorners(n)
	case p == choreography.Margins, p == choreography.Paddings:
		return decodeInsets(n)
	}
	return nil, fmt.Errorf("unsupported property %v", p)
}

func decodeFloat(n *yaml.Node) (float64, error) {
	var f float64
	err := n.Decode(&f)
	return f, err
}

func decodeColor(n *yaml.Node) (graphics.Color, error) {
	var s string
	if err := n.Decode(&s); err != nil {
		return 0, err
	}
	return graphics.ParseColor(s)
}

// decodeList reads one number repeated size times, or exactly size numbers.
func decodeList(n *yaml.Node, size int) ([]float64, error) {
	if n.Kind == yaml.ScalarNode {
		f, err := decodeFloat(n)
		if err != nil {
			return nil, err
		}
		out := make([]float64, size)
		for i := range out {
			out[i] = f
		}
		return out, nil
	}
	var list []float64
	if err := n.Decode(&list); err != nil {
		return nil, err
	}
	if len(list) != size {
		return nil, fmt.Errorf("line %d: want %d values, got %d", n.Line, size, len(list))
	}
	return list, nil
}

func decodeCorners(n *yaml.Node) (graphics.CornerRadii, error) {
	var r graphics.CornerRadii
	list, err := decodeList(n, len(r))
	if err != nil {
		return r, err
	}
	copy(r[:], list)
	return r, nil
}

func decodeInsets(n *yaml.Node) (graphics.Insets, error) {
	list, err := decodeList(n, 4)
	if err != nil {
		return graphics.Insets{}, err
	}
	return graphics.InsetsFrom([4]float64(list)), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
