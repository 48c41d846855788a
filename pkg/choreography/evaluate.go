package choreography

import (
	"fmt"

	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

// EventKind classifies a segment event.
type EventKind int

const (
	// EventStart fires the first time a segment becomes active.
	EventStart EventKind = iota
	// EventTrigger fires when an offset trigger is crossed.
	EventTrigger
	// EventEnd fires the first time a segment reaches its end.
	EventEnd
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventTrigger:
		return "trigger"
	case EventEnd:
		return "end"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is an edge crossed during one evaluation.
type Event struct {
	Segment SegmentID
	Kind    EventKind
	// Trigger is the index of the offset trigger for EventTrigger.
	Trigger int
}

// Sample is one interpolated property value for one target.
type Sample struct {
	Target   TargetID
	Property Property
	Value    any
}

// Frame is the result of evaluating a schedule at one global fraction.
// Samples are ordered head to tail, so applying them in order leaves every
// property at the value of the latest active segment.
type Frame struct {
	Fraction float64
	Samples  []Sample
	Events   []Event
}

// Evaluate advances the schedule to the global fraction f. Fractions
// outside [0, 1] are clamped. Segment callbacks run during the call; edits
// they make to the chain are rejected and reported as the returned error.
func (s *Schedule) Evaluate(f float64) (Frame, error) {
	if err := s.usable("Evaluate"); err != nil {
		return Frame{}, err
	}
	ch := s.chain
	if err := ch.enter("Evaluate"); err != nil {
		return Frame{}, err
	}
	mutationsBefore := ch.err

	frame := Frame{Fraction: clamp01(f)}
	func() {
		defer ch.leave()
		for _, ctl := range s.controls {
			step := ctl.Evaluate(frame.Fraction)
			if !step.Active {
				continue
			}
			ctl.emit(&frame, step)
		}
	}()

	if ch.err != nil && ch.err != mutationsBefore {
		return frame, ch.err
	}
	return frame, nil
}

func (s *Schedule) usable(op string) error {
	if s == nil || s.chain == nil {
		return &choreoerrors.UnscheduledChainError{Reason: op + " before Build"}
	}
	if s.Stale() {
		return &choreoerrors.UnscheduledChainError{Reason: "chain changed since Build"}
	}
	return nil
}

// emit appends the step's events and samples to frame and runs callbacks.
func (ctl *Control) emit(frame *Frame, step Step) {
	seg := ctl.segment
	if step.Started {
		frame.Events = append(frame.Events, Event{Segment: ctl.id, Kind: EventStart})
		for _, fn := range seg.onStart {
			fn(seg)
		}
	}

	ctl.sample(frame, step.Local)

	for _, fn := range seg.onProgress {
		fn(seg, step.Local)
	}
	for _, i := range step.Triggers {
		frame.Events = append(frame.Events, Event{Segment: ctl.id, Kind: EventTrigger, Trigger: i})
		seg.triggers[i].fn(seg)
	}
	if step.Ended {
		frame.Events = append(frame.Events, Event{Segment: ctl.id, Kind: EventEnd})
		for _, fn := range seg.onEnd {
			fn(seg)
		}
	}
}

// sample interpolates every track for every target at local fraction.
// Curves are already baked into the compiled tracks.
func (ctl *Control) sample(frame *Frame, local float64) {
	for i, t := range ctl.targets {
		f := local
		if ctl.windows != nil {
			f = ctl.windows[i].Span(local)
		}
		for _, tr := range ctl.tracks {
			p := tr.Property()
			if !ctl.animates(tr) || !t.Supports(p) {
				continue
			}
			if ctl.onArc(p) {
				pos := ctl.arc.At(ctl.arcCurve(f))
				v := pos[0]
				if p == TranslationY {
					v = pos[1]
				}
				frame.Samples = append(frame.Samples, Sample{Target: t.ID, Property: p, Value: v})
				continue
			}
			frame.Samples = append(frame.Samples, Sample{Target: t.ID, Property: p, Value: tr.eval(f)})
		}
		for _, k := range ctl.keyframes {
			if !t.Supports(k.Property) {
				continue
			}
			frame.Samples = append(frame.Samples, Sample{
				Target:   t.ID,
				Property: k.Property,
				Value:    k.At(scale(ctl.duration, f), ctl.duration),
			})
		}
	}
}

// animates reports whether tr produces samples. Both translation axes
// follow an arc even when only one of them changes.
func (ctl *Control) animates(tr propertyTrack) bool {
	return tr.CanInterpolate() || ctl.onArc(tr.Property())
}

func (ctl *Control) onArc(p Property) bool {
	return ctl.arc != nil && (p == TranslationX || p == TranslationY)
}

// Reset clears every control and returns samples restoring each animated
// property to its start value. Samples run tail to head so the earliest
// segment's start value is applied last.
func (s *Schedule) Reset() ([]Sample, error) {
	return s.reset(nil)
}

// ResetTarget is Reset limited to the segments and samples of one target.
func (s *Schedule) ResetTarget(id TargetID) ([]Sample, error) {
	return s.reset(&id)
}

func (s *Schedule) reset(only *TargetID) ([]Sample, error) {
	if err := s.usable("Reset"); err != nil {
		return nil, err
	}
	var out []Sample
	for i := len(s.controls) - 1; i >= 0; i-- {
		ctl := s.controls[i]
		if only != nil && !touches(ctl.targets, []TargetID{*only}) {
			continue
		}
		ctl.Reset()
		for _, t := range ctl.targets {
			if only != nil && t.ID != *only {
				continue
			}
			for _, tr := range ctl.tracks {
				if ctl.animates(tr) && t.Supports(tr.Property()) {
					out = append(out, Sample{Target: t.ID, Property: tr.Property(), Value: tr.fromValue()})
				}
			}
			for _, k := range ctl.keyframes {
				if !t.Supports(k.Property) {
					continue
				}
				out = append(out, Sample{Target: t.ID, Property: k.Property, Value: k.First()})
			}
		}
	}
	return out, nil
}
