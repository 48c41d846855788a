// Package animation provides the timing primitives that drive a choreography:
// a swappable [Clock], frame [Ticker]s stepped by the host loop, an
// [AnimationController] that turns elapsed time into a normalized progress
// value, easing [Curve]s, and generic interpolation helpers.
//
// # Driving a timeline
//
// The controller produces the single global fraction a scheduled chain
// consumes. Something has to step the tickers once per frame: either the
// host's own frame loop calling [StepTickers], or [RunFrames]:
//
//	ctrl := animation.NewAnimationController(schedule.TotalDuration())
//	ctrl.AddListener(func() {
//	    frame, _ := schedule.Evaluate(ctrl.Value)
//	    apply(frame)
//	})
//	ctrl.Forward()
//	animation.RunFrames(ctx, 60)
package animation

import (
	"context"
	"sync"
	"time"
)

var (
	tickerMu      sync.Mutex
	activeTickers = make(map[*Ticker]struct{})
)

// Ticker calls a callback on each frame while active.
//
// The callback receives the elapsed time since Start was called. Tickers are
// advanced by [StepTickers]; nothing happens between steps.
type Ticker struct {
	callback func(elapsed time.Duration)
	isActive bool
	start    time.Time
}

// NewTicker creates a new ticker with the given callback.
func NewTicker(callback func(elapsed time.Duration)) *Ticker {
	return &Ticker{callback: callback}
}

// Start activates the ticker and records the start time.
func (t *Ticker) Start() {
	t.StartAt(Now())
}

// StartAt activates the ticker as if it had been started at the given time.
// Controllers use it to resume part way through an animation.
func (t *Ticker) StartAt(start time.Time) {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	t.start = start
	if t.isActive {
		return
	}
	t.isActive = true
	activeTickers[t] = struct{}{}
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if !t.isActive {
		return
	}
	t.isActive = false
	delete(activeTickers, t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return t.isActive
}

// Elapsed returns the time since the ticker started, or zero when stopped.
func (t *Ticker) Elapsed() time.Duration {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	if !t.isActive {
		return 0
	}
	return Now().Sub(t.start)
}

// StepTickers advances all active tickers once. Call it once per frame.
func StepTickers() {
	tickerMu.Lock()
	if len(activeTickers) == 0 {
		tickerMu.Unlock()
		return
	}
	// Copy so callbacks can start or stop tickers without deadlocking.
	tickers := make([]*Ticker, 0, len(activeTickers))
	starts := make([]time.Time, 0, len(activeTickers))
	for ticker := range activeTickers {
		tickers = append(tickers, ticker)
		starts = append(starts, ticker.start)
	}
	tickerMu.Unlock()

	now := Now()
	for i, ticker := range tickers {
		if ticker.callback != nil && ticker.IsActive() {
			ticker.callback(now.Sub(starts[i]))
		}
	}
}

// HasActiveTickers returns true if any tickers are active.
func HasActiveTickers() bool {
	tickerMu.Lock()
	defer tickerMu.Unlock()
	return len(activeTickers) > 0
}

// RunFrames steps the tickers fps times per second until ctx is done.
// It returns ctx.Err().
func RunFrames(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 60
	}
	frames := time.NewTicker(time.Second / time.Duration(fps))
	defer frames.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames.C:
			StepTickers()
		}
	}
}
