package motiontest

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreography"
)

// DefaultFrameInterval is the time one Pump advances the clock by.
const DefaultFrameInterval = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: playback did not settle")

// Tester plays schedules on a fake clock and applies every frame to
// recording targets.
type Tester struct {
	clock     *FakeClock
	prevClock animation.Clock
	interval  time.Duration
	targets   map[choreography.TargetID]*FakeTarget
	player    *choreography.Player
	frames    []choreography.Frame
}

// NewTester creates a tester and installs its fake clock.
// Call Cleanup when done, or use NewTesterWithT instead.
func NewTester() *Tester {
	clk := NewFakeClock()
	t := &Tester{
		clock:    clk,
		interval: DefaultFrameInterval,
		targets:  make(map[choreography.TargetID]*FakeTarget),
	}
	t.prevClock = animation.SetClock(clk)
	return t
}

// NewTesterWithT creates a tester that cleans up via t.Cleanup().
func NewTesterWithT(t testing.TB) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup disposes the player and restores the previous clock.
func (t *Tester) Cleanup() {
	if t.player != nil {
		t.player.Dispose()
		t.player = nil
	}
	animation.SetClock(t.prevClock)
}

// Clock returns the fake clock.
func (t *Tester) Clock() *FakeClock { return t.clock }

// SetFrameInterval sets how far one Pump advances the clock.
func (t *Tester) SetFrameInterval(d time.Duration) { t.interval = d }

// Target returns the recording target for id, creating it on first use.
func (t *Tester) Target(id choreography.TargetID) *FakeTarget {
	if ft, ok := t.targets[id]; ok {
		return ft
	}
	ft := NewFakeTarget(id)
	t.targets[id] = ft
	return ft
}

// Load replaces the current player with one driving s.
func (t *Tester) Load(s *choreography.Schedule) *choreography.Player {
	if t.player != nil {
		t.player.Dispose()
	}
	t.frames = nil
	t.player = choreography.NewPlayer(s, t.apply)
	return t.player
}

// Player returns the current player, or nil before Load.
func (t *Tester) Player() *choreography.Player { return t.player }

// Play starts the loaded schedule.
func (t *Tester) Play() { t.player.Play() }

// Pump advances the clock by one frame interval and steps the tickers.
func (t *Tester) Pump() {
	t.clock.Advance(t.interval)
	animation.StepTickers()
}

// PumpFor pumps frames until d has elapsed. The last frame may be shorter
// than the frame interval.
func (t *Tester) PumpFor(d time.Duration) {
	for d > 0 {
		step := min(d, t.interval)
		t.clock.Advance(step)
		animation.StepTickers()
		d -= step
	}
}

// PumpAndSettle pumps frames until playback stops or timeout elapses.
func (t *Tester) PumpAndSettle(timeout time.Duration) error {
	for elapsed := time.Duration(0); t.player != nil && t.player.Controller().IsAnimating(); elapsed += t.interval {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Pump()
	}
	return nil
}

// Frames returns every frame delivered since Load.
func (t *Tester) Frames() []choreography.Frame { return t.frames }

// Events returns the events of every frame since Load, in order.
func (t *Tester) Events() []choreography.Event {
	var out []choreography.Event
	for _, f := range t.frames {
		out = append(out, f.Events...)
	}
	return out
}

func (t *Tester) apply(f choreography.Frame) {
	t.frames = append(t.frames, f)
	for _, s := range f.Samples {
		t.Target(s.Target).SetProperty(s.Property, s.Value)
	}
}
