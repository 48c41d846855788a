package choreography

import (
	"math"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/arc"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
	"github.com/go-drift/choreo/pkg/graphics"
	"github.com/go-drift/choreo/pkg/stagger"
)

// Schedule is a chain flattened into absolute timing. It stays valid until
// the chain is edited.
type Schedule struct {
	chain      *Chain
	generation uint64
	controls   []*Control
	total      time.Duration
}

// Build validates the chain and computes the absolute timing of every
// segment.
//
// Walking head to tail, each segment s with parent p contributes
//
//	total += s.duration·(s.child.offset, or 1 for the tail) + s.delay
//	start += p.duration·s.offset + s.delay
//
// and, once the total is known, gets the window
// [start/total, start/total + s.duration/total], clamped to [0, 1].
//
// Before timing, a resolution pass walks the chain in the same order and
// gives every track concrete values and a concrete curve: unset values come
// from the state the earlier segments leave each target in, modifiers are
// folded into the end value, and reversed segments replay their source
// backwards.
func (c *Chain) Build() (*Schedule, error) {
	const op = "choreography.Chain.Build"
	if err := c.enter("Build"); err != nil {
		return nil, err
	}
	defer c.leave()

	if c.err != nil {
		return nil, c.err
	}
	if len(c.segments) == 0 {
		return nil, &choreoerrors.UnscheduledChainError{Reason: "chain has no segments"}
	}
	for _, s := range c.segments {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}

	sched := &Schedule{chain: c, generation: c.generation}
	compiled := make(map[*Segment]*Control, len(c.segments))
	state := make(map[TargetID]*Properties)

	var total, start time.Duration
	for i, s := range c.segments {
		ctl := &Control{
			segment:      s,
			id:           s.id,
			targets:      s.targets,
			curve:        s.resolvedCurve(),
			fromFraction: 0,
			toFraction:   1,
			duration:     s.duration,
			repeat:       s.repeat,
			fired:        make([]bool, len(s.triggers)),
		}
		if s.reverseFlag {
			ctl.fromFraction, ctl.toFraction = 1, 0
		}
		if err := ctl.compileTracks(s, state, compiled); err != nil {
			return nil, &choreoerrors.ChoreoError{Op: op, Kind: choreoerrors.KindOf(err), Segment: int(s.id), Err: err}
		}

		var parentDuration time.Duration
		if i > 0 {
			parentDuration = c.segments[i-1].duration
		}
		childOffset := 1.0
		if i+1 < len(c.segments) {
			childOffset = c.segments[i+1].offset
		}
		offset := s.offset
		if i == 0 {
			offset = 0
		}

		skipped := scale(parentDuration, 1-offset)
		ctl.localDelay = absDuration(parentDuration-skipped) + s.delay
		total += scale(s.duration, childOffset) + s.delay
		start += scale(parentDuration, offset) + s.delay
		ctl.startDelay = start

		compiled[s] = ctl
		sched.controls = append(sched.controls, ctl)
	}
	sched.total = total

	for _, ctl := range sched.controls {
		ctl.total = total
		if total > 0 {
			ctl.offsetStart = clamp01(float64(ctl.startDelay) / float64(total))
			ctl.offsetEnd = min(max(ctl.offsetStart+float64(ctl.duration)/float64(total), ctl.offsetStart), 1)
		}
		if err := ctl.distribute(); err != nil {
			return nil, &choreoerrors.ChoreoError{Op: op, Kind: choreoerrors.KindInvalidOffset, Segment: int(ctl.id), Err: err}
		}
	}

	c.log.Debug().
		Int("segments", len(sched.controls)).
		Dur("total", total).
		Uint64("generation", sched.generation).
		Msg("chain scheduled")
	return sched, nil
}

func (s *Segment) validate() error {
	switch {
	case s.duration < 0:
		return &choreoerrors.InvalidOffsetError{Segment: int(s.id), Field: "duration", Value: float64(s.duration) / float64(time.Millisecond)}
	case s.delay < 0:
		return &choreoerrors.InvalidOffsetError{Segment: int(s.id), Field: "delay", Value: float64(s.delay) / float64(time.Millisecond)}
	case !validOffset(s.offset):
		return &choreoerrors.InvalidOffsetError{Segment: int(s.id), Field: "offset", Value: s.offset}
	}
	if s.stagger != nil {
		return s.stagger.Validate()
	}
	return nil
}

func (s *Segment) resolvedCurve() animation.Curve {
	if s.curve != nil {
		return s.curve
	}
	if s.chain.defaultCurve != nil {
		return s.chain.defaultCurve
	}
	return animation.LinearCurve
}

// compileTracks resolves the segment's tracks against the running target
// state and advances that state to the segment's end values.
func (ctl *Control) compileTracks(s *Segment, state map[TargetID]*Properties, compiled map[*Segment]*Control) error {
	if len(s.targets) == 0 {
		return nil
	}
	base := stateFor(state, s, 0)

	var covered [propertyCount]bool
	if src := compiled[s.reverseOf]; src != nil {
		for _, t := range src.tracks {
			if p := t.Property(); s.hasTrack(p) {
				ctl.tracks = append(ctl.tracks, flipped(t))
				covered[p] = true
			}
		}
		for _, k := range src.keyframes {
			if s.hasTrack(k.Property) {
				ctl.keyframes = append(ctl.keyframes, k.reversed())
				covered[k.Property] = true
			}
		}
		if src.arc != nil {
			p := src.arc.Reversed()
			ctl.arc, ctl.arcCurve = &p, src.arcCurve
		}
	}
	for p := range propertyCount {
		if covered[p] {
			continue
		}
		if k := s.keyframes[p]; k != nil && len(k.Values) >= 2 {
			kc := k.clone()
			if kc.Curve == nil {
				kc.Curve = ctl.curve
			}
			ctl.keyframes = append(ctl.keyframes, kc)
			continue
		}
		if t := s.tracks[p]; t != nil {
			ctl.tracks = append(ctl.tracks, t.compile(base, ctl.curve))
		}
	}
	if ctl.arc == nil {
		ctl.compileArc(s)
	}

	for i := range s.targets {
		st := stateFor(state, s, i)
		for _, tr := range ctl.tracks {
			if err := st.Set(tr.Property(), tr.toValue()); err != nil {
				return err
			}
		}
		for _, k := range ctl.keyframes {
			if err := st.Set(k.Property, k.Last()); err != nil {
				return err
			}
		}
	}
	return nil
}

// stateFor returns the running state of the i-th target, seeding it from
// the segment's authoring-time snapshot.
func stateFor(state map[TargetID]*Properties, s *Segment, i int) *Properties {
	id := s.targets[i].ID
	if st, ok := state[id]; ok {
		return st
	}
	snap := s.snapshot[i]
	state[id] = &snap
	return &snap
}

func (ctl *Control) compileArc(s *Segment) {
	if s.arc == nil {
		return
	}
	var x, y propertyTrack
	for _, t := range ctl.tracks {
		switch t.Property() {
		case TranslationX:
			x = t
		case TranslationY:
			y = t
		}
	}
	if x == nil && y == nil {
		return
	}
	var from, to graphics.Point
	curve := ctl.curve
	if x != nil {
		from[0], to[0] = x.fromValue().(float64), x.toValue().(float64)
		curve = x.(*Track[float64]).curve
	}
	if y != nil {
		from[1], to[1] = y.fromValue().(float64), y.toValue().(float64)
		if x == nil {
			curve = y.(*Track[float64]).curve
		}
	}
	path := arc.NewPath(s.arc.kind, from, to)
	if s.arc.control != nil {
		path.Control = *s.arc.control
	}
	ctl.arc, ctl.arcCurve = &path, curve
}

// distribute computes stagger windows for the segment's targets.
func (ctl *Control) distribute() error {
	spec := ctl.segment.stagger
	if spec == nil || len(ctl.targets) == 0 {
		return nil
	}
	items := make([]stagger.Item, len(ctl.targets))
	bounds := make([]graphics.Rect, len(ctl.targets))
	for i, t := range ctl.targets {
		items[i] = stagger.Item{Target: string(t.ID), Position: t.Bounds.Center()}
		bounds[i] = t.Bounds
	}
	windows, err := stagger.Distribute(*spec, items, stagger.DefaultEpicenter(bounds...), ctl.duration)
	if err != nil {
		return err
	}
	ctl.windows = windows
	return nil
}

func scale(d time.Duration, k float64) time.Duration {
	return time.Duration(math.Round(float64(d) * k))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// TotalDuration returns the timeline length.
func (s *Schedule) TotalDuration() time.Duration { return s.total }

// TotalDurationMs returns the timeline length in whole milliseconds.
func (s *Schedule) TotalDurationMs() uint64 {
	return uint64(s.total.Round(time.Millisecond) / time.Millisecond)
}

// Span returns the time from the timeline start to the latest segment end.
// It exceeds TotalDuration when parallel segments outlast their parents.
func (s *Schedule) Span() time.Duration {
	var end time.Duration
	for _, c := range s.controls {
		end = max(end, c.startDelay+c.duration)
	}
	return end
}

// Controls returns the controls from head to tail.
func (s *Schedule) Controls() []*Control {
	out := make([]*Control, len(s.controls))
	copy(out, s.controls)
	return out
}

// Control returns the control of segment id, or nil.
func (s *Schedule) Control(id SegmentID) *Control {
	for _, c := range s.controls {
		if c.id == id {
			return c
		}
	}
	return nil
}

// Stale reports whether the chain changed since the schedule was built.
func (s *Schedule) Stale() bool {
	return s.generation != s.chain.generation
}
