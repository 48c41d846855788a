package choreography

import (
	"math"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/arc"
	"github.com/go-drift/choreo/pkg/stagger"
)

// Control is the runtime companion of a segment in one schedule. It maps the
// global fraction into the segment's local progress and remembers which
// edge events already fired.
type Control struct {
	segment *Segment
	id      SegmentID
	targets []*Target

	curve        animation.Curve
	fromFraction float64
	toFraction   float64
	duration     time.Duration
	startDelay   time.Duration
	localDelay   time.Duration
	offsetStart  float64
	offsetEnd    float64
	total        time.Duration
	repeat       Repeat

	tracks    []propertyTrack
	keyframes []*Keyframes
	arc       *arc.Path
	arcCurve  animation.Curve
	windows   []stagger.Window

	started bool
	ended   bool
	seek    float64
	local   float64
	fired   []bool
}

// Step is the outcome of one Evaluate call on a control.
type Step struct {
	// Active is false while the global fraction is before the window.
	Active bool
	// Seek is the clamped position within the window.
	Seek float64
	// Local is Seek after the repeat transform.
	Local float64
	// Eased is Local passed through the segment curve.
	Eased float64
	// PlayTime is Local·duration.
	PlayTime time.Duration
	// Started and Ended report edges crossed by this call.
	Started bool
	Ended   bool
	// Triggers lists offset triggers crossed by this call.
	Triggers []int
}

// ID returns the segment id.
func (c *Control) ID() SegmentID { return c.id }

// Segment returns the owning segment.
func (c *Control) Segment() *Segment { return c.segment }

// Duration returns the segment's play time.
func (c *Control) Duration() time.Duration { return c.duration }

// StartDelay returns the absolute start time within the timeline.
func (c *Control) StartDelay() time.Duration { return c.startDelay }

// LocalDelay returns the start time relative to the parent's start.
func (c *Control) LocalDelay() time.Duration { return c.localDelay }

// OffsetStart returns the window start as a fraction of the timeline.
func (c *Control) OffsetStart() float64 { return c.offsetStart }

// OffsetEnd returns the window end as a fraction of the timeline.
func (c *Control) OffsetEnd() float64 { return c.offsetEnd }

// FromFraction is 1 for reversed segments and 0 otherwise.
func (c *Control) FromFraction() float64 { return c.fromFraction }

// ToFraction is 0 for reversed segments and 1 otherwise.
func (c *Control) ToFraction() float64 { return c.toFraction }

// Started reports whether the start event fired.
func (c *Control) Started() bool { return c.started }

// Ended reports whether the end event fired.
func (c *Control) Ended() bool { return c.ended }

// SeekFraction returns the last clamped position within the window.
func (c *Control) SeekFraction() float64 { return c.seek }

// PlayTime returns the elapsed local time at the last evaluation.
func (c *Control) PlayTime() time.Duration {
	return time.Duration(c.local * float64(c.duration))
}

// Direction maps the last local fraction from FromFraction to ToFraction,
// for sub-animations that must run backwards on reversed segments.
func (c *Control) Direction() float64 {
	return animation.LerpFloat64(c.fromFraction, c.toFraction, c.local)
}

// Windows returns the stagger window of every target, or nil.
func (c *Control) Windows() []stagger.Window { return c.windows }

// Reset clears the edge state so the segment can play again.
func (c *Control) Reset() {
	c.started, c.ended = false, false
	c.seek, c.local = 0, 0
	clear(c.fired)
}

// Evaluate advances the control to the global fraction f, clamped to
// [0, 1]. Start and end each fire at most once until Reset.
func (c *Control) Evaluate(f float64) Step {
	f = clamp01(f)
	if f < c.offsetStart {
		return Step{}
	}

	seek := 1.0
	if c.offsetEnd > c.offsetStart {
		seek = clamp01(mapRange(f, c.offsetStart, c.offsetEnd, 0, 1))
	}
	c.seek = seek
	c.local = c.repeated(seek, f)

	step := Step{Active: true, Seek: seek, Local: c.local}
	if !c.started {
		c.started = true
		step.Started = true
	}
	for i, t := range c.segment.triggers {
		if i < len(c.fired) && !c.fired[i] && c.local >= t.at {
			c.fired[i] = true
			step.Triggers = append(step.Triggers, i)
		}
	}
	if !c.ended && c.finished(f, seek) {
		c.ended = true
		step.Ended = true
	}

	step.Eased = c.curve(c.local)
	step.PlayTime = time.Duration(c.local * float64(c.duration))
	return step
}

func (c *Control) finished(f, seek float64) bool {
	if c.repeat.Count == Infinite {
		return f >= 1
	}
	return f >= c.offsetEnd || seek >= 1
}

// repeated applies the repeat transform. Finite repeats split the window
// into Count+1 equal passes; infinite repeats cycle on elapsed time.
func (c *Control) repeated(seek, f float64) float64 {
	r := c.repeat
	switch {
	case r.Count == 0:
		return seek
	case r.Count == Infinite:
		if c.duration <= 0 {
			return 1
		}
		elapsed := f*float64(c.total) - float64(c.startDelay)
		pos := max(elapsed, 0) / float64(c.duration)
		return c.pass(pos, math.MaxInt)
	default:
		return c.pass(seek*float64(r.Count+1), r.Count+1)
	}
}

func (c *Control) pass(pos float64, passes int) float64 {
	n := int(math.Floor(pos))
	local := pos - float64(n)
	if n >= passes {
		n, local = passes-1, 1
	} else if n > 0 && local == 0 {
		// Land on the end of the previous pass, not the start of the next.
		n, local = n-1, 1
	}
	if c.repeat.Mode == Reverse && n%2 == 1 {
		return 1 - local
	}
	return local
}

func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
