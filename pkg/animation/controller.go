package animation

import (
	"fmt"
	"time"
)

// AnimationStatus represents the current state of an animation.
//
//	                Forward()
//	Dismissed ──────────────────► Completed
//	    ▲                              │
//	    │         Reverse()            │
//	    └──────────────────────────────┘
//
// While animating, status is AnimationForward or AnimationReverse.
type AnimationStatus int

const (
	// AnimationDismissed means the animation is stopped at the lower bound.
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the animation is playing toward the upper bound.
	AnimationForward
	// AnimationReverse means the animation is playing toward the lower bound.
	AnimationReverse
	// AnimationCompleted means the animation is stopped at the upper bound.
	AnimationCompleted
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController turns elapsed frame time into a progress Value moving
// between LowerBound and UpperBound over Duration.
//
// For a choreography the controller is the external driver: its Value is
// the global fraction fed to the schedule on every tick. Curve is applied to
// the controller's own progress and is normally left linear, since every
// segment applies its own easing.
//
// Always call Dispose when done to stop the ticker and drop listeners.
type AnimationController struct {
	// Value is the current progress, between LowerBound and UpperBound.
	Value float64

	// Duration is the time a full sweep from LowerBound to UpperBound takes.
	Duration time.Duration

	// Curve transforms linear progress. Nil means linear.
	Curve Curve

	// LowerBound is the minimum value (default 0.0).
	LowerBound float64

	// UpperBound is the maximum value (default 1.0).
	UpperBound float64

	// Repeat restarts a forward animation from LowerBound each time it
	// reaches UpperBound, until Stop is called.
	Repeat bool

	status          AnimationStatus
	ticker          *Ticker
	target          float64
	startValue      float64
	span            time.Duration
	listeners       []listener[func()]
	statusListeners []listener[func(AnimationStatus)]
	nextListenerID  int
}

type listener[F any] struct {
	id int
	fn F
}

// NewAnimationController creates an animation controller with the given duration.
func NewAnimationController(duration time.Duration) *AnimationController {
	return &AnimationController{
		Duration:   duration,
		UpperBound: 1,
		Curve:      LinearCurve,
		status:     AnimationDismissed,
	}
}

// Forward animates from the current value to the upper bound.
func (c *AnimationController) Forward() {
	c.animateTo(c.UpperBound, AnimationForward)
}

// Reverse animates from the current value to the lower bound.
func (c *AnimationController) Reverse() {
	c.animateTo(c.LowerBound, AnimationReverse)
}

// AnimateTo animates to a specific target value.
func (c *AnimationController) AnimateTo(target float64) {
	if target > c.Value {
		c.animateTo(target, AnimationForward)
	} else {
		c.animateTo(target, AnimationReverse)
	}
}

// Seek jumps to value without animating and notifies listeners. Any running
// animation is stopped.
func (c *AnimationController) Seek(value float64) {
	c.Stop()
	c.Value = min(max(value, c.LowerBound), c.UpperBound)
	c.settle()
	c.notifyListeners()
}

func (c *AnimationController) animateTo(target float64, direction AnimationStatus) {
	if c.ticker != nil {
		c.ticker.Stop()
	}

	c.target = target
	c.startValue = c.Value
	c.span = c.spanFor(c.startValue, target)
	c.setStatus(direction)

	c.ticker = NewTicker(c.tick)
	c.ticker.Start()
}

// spanFor scales Duration by the share of the full range left to cover, so a
// resumed animation keeps the same speed.
func (c *AnimationController) spanFor(from, to float64) time.Duration {
	full := c.UpperBound - c.LowerBound
	if full <= 0 {
		return 0
	}
	share := (to - from) / full
	if share < 0 {
		share = -share
	}
	return time.Duration(float64(c.Duration) * share)
}

func (c *AnimationController) tick(elapsed time.Duration) {
	if c.span <= 0 {
		c.Value = c.target
		c.notifyListeners()
		c.finish()
		return
	}

	progress := float64(elapsed) / float64(c.span)
	if progress >= 1.0 {
		progress = 1.0
	}

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	c.notifyListeners()

	if progress >= 1.0 {
		c.finish()
	}
}

func (c *AnimationController) finish() {
	if c.Repeat && c.status == AnimationForward && c.ticker != nil {
		c.Value = c.LowerBound
		c.startValue = c.LowerBound
		c.span = c.spanFor(c.LowerBound, c.target)
		c.ticker.Start()
		return
	}
	c.Stop()
	c.settle()
}

func (c *AnimationController) settle() {
	if c.Value <= c.LowerBound {
		c.setStatus(AnimationDismissed)
	} else if c.Value >= c.UpperBound {
		c.setStatus(AnimationCompleted)
	}
}

// Reset immediately sets the value to the lower bound.
func (c *AnimationController) Reset() {
	c.Stop()
	c.Value = c.LowerBound
	c.setStatus(AnimationDismissed)
	c.notifyListeners()
}

// Stop stops the animation at the current value.
func (c *AnimationController) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true if the animation is currently running.
func (c *AnimationController) IsAnimating() bool {
	return c.ticker != nil
}

// IsCompleted returns true if the animation finished at the upper bound.
func (c *AnimationController) IsCompleted() bool {
	return c.status == AnimationCompleted
}

// IsDismissed returns true if the animation is at the lower bound.
func (c *AnimationController) IsDismissed() bool {
	return c.status == AnimationDismissed
}

// AddListener adds a callback that fires whenever the value changes.
// Listeners run in registration order. Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners = append(c.listeners, listener[func()]{id: id, fn: fn})
	return func() { c.listeners = without(c.listeners, id) }
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners = append(c.statusListeners, listener[func(AnimationStatus)]{id: id, fn: fn})
	return func() { c.statusListeners = without(c.statusListeners, id) }
}

func without[F any](ls []listener[F], id int) []listener[F] {
	out := ls[:0:0]
	for _, l := range ls {
		if l.id != id {
			out = append(out, l)
		}
	}
	return out
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, l := range c.statusListeners {
		l.fn(status)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, l := range c.listeners {
		l.fn()
	}
}

// Dispose cleans up resources used by the controller.
func (c *AnimationController) Dispose() {
	c.Stop()
	c.listeners = nil
	c.statusListeners = nil
}
