package choreography

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }

func (c *stepClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
	animation.StepTickers()
}

func useStepClock(t *testing.T) *stepClock {
	t.Helper()
	clk := &stepClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	prev := animation.SetClock(clk)
	t.Cleanup(func() { animation.SetClock(prev) })
	return clk
}

type captureHandler struct {
	errs   []*choreoerrors.ChoreoError
	panics []*choreoerrors.PanicError
}

func (h *captureHandler) HandleError(err *choreoerrors.ChoreoError) { h.errs = append(h.errs, err) }
func (h *captureHandler) HandlePanic(err *choreoerrors.PanicError)  { h.panics = append(h.panics, err) }

func useCaptureHandler(t *testing.T) *captureHandler {
	t.Helper()
	h := &captureHandler{}
	prev := choreoerrors.SetHandler(h)
	t.Cleanup(func() { choreoerrors.SetHandler(prev) })
	return h
}

func fadeOut(t *testing.T) (*Chain, *Schedule) {
	t.Helper()
	ch := NewChain()
	ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0)
	return ch, build(t, ch)
}

func TestPlayerPlaysToEnd(t *testing.T) {
	clk := useStepClock(t)
	_, s := fadeOut(t)
	var frames []Frame
	p := NewPlayer(s, func(f Frame) { frames = append(frames, f) })
	defer p.Dispose()

	p.Play()
	clk.advance(50 * ms)
	require.Len(t, frames, 1)
	assert.InDelta(t, 0.5, frames[0].Fraction, 1e-9)
	assert.InDelta(t, 0.5, scalarAt(t, frames[0], "a", Alpha), 1e-9)
	assert.Equal(t, []string{"start:1"}, events(frames[0]))

	clk.advance(60 * ms)
	require.Len(t, frames, 2)
	assert.Equal(t, []string{"end:1"}, events(frames[1]))
	assert.True(t, p.Controller().IsCompleted())
	assert.Equal(t, 1.0, p.Fraction())
	assert.NoError(t, p.Err())
}

func TestPlayerLoopReplaysEvents(t *testing.T) {
	clk := useStepClock(t)
	_, s := fadeOut(t)
	starts := 0
	p := NewPlayer(s, func(f Frame) {
		for _, e := range f.Events {
			if e.Kind == EventStart {
				starts++
			}
		}
	})
	defer p.Dispose()

	p.Loop(true)
	p.Play()
	clk.advance(100 * ms)
	clk.advance(30 * ms)
	clk.advance(100 * ms)
	clk.advance(30 * ms)
	assert.Equal(t, 3, starts)
	assert.True(t, p.Controller().IsAnimating())

	p.Stop()
	assert.False(t, p.Controller().IsAnimating())
}

func TestPlayerSeek(t *testing.T) {
	useStepClock(t)
	_, s := fadeOut(t)
	var last Frame
	p := NewPlayer(s, func(f Frame) { last = f })
	defer p.Dispose()

	p.Seek(0.25)
	assert.InDelta(t, 0.75, scalarAt(t, last, "a", Alpha), 1e-9)
}

func TestPlayerSeekBackReplaysEvents(t *testing.T) {
	clk := useStepClock(t)
	ch := NewChain()
	ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0).
		ThenAnimate().WithDuration(100 * ms).AlphaTo(1)
	s := build(t, ch)
	var got []string
	p := NewPlayer(s, func(f Frame) { got = append(got, events(f)...) })
	defer p.Dispose()

	p.Seek(1)
	assert.Equal(t, []string{"start:1", "end:1", "start:2", "end:2"}, got)

	got = nil
	p.Seek(0)
	p.Play()
	for range 30 {
		clk.advance(10 * ms)
	}
	assert.Equal(t, []string{"start:1", "end:1", "start:2", "end:2"}, got)
	assert.Equal(t, 1.0, p.Fraction())
}

func TestPlayerSeekBackResetsLaterSegments(t *testing.T) {
	useStepClock(t)
	ch := NewChain()
	ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0).
		ThenAnimate().WithDuration(100 * ms).AlphaTo(1)
	s := build(t, ch)
	p := NewPlayer(s, nil)
	defer p.Dispose()

	p.Seek(1)
	p.Seek(0.25)
	assert.True(t, s.Controls()[0].Started())
	assert.False(t, s.Controls()[1].Started())
	assert.False(t, s.Controls()[1].Ended())
}

func TestPlayerReset(t *testing.T) {
	useStepClock(t)
	_, s := fadeOut(t)
	var frames []Frame
	p := NewPlayer(s, func(f Frame) { frames = append(frames, f) })
	defer p.Dispose()

	p.Seek(1)
	require.NoError(t, p.Reset())

	last := frames[len(frames)-1]
	assert.Empty(t, last.Events)
	assert.Equal(t, []Sample{{Target: "a", Property: Alpha, Value: 1.0}}, last.Samples)
	assert.Equal(t, 0.0, p.Fraction())
	assert.False(t, s.Controls()[0].Started())
}

func TestPlayerReportsStaleSchedule(t *testing.T) {
	useStepClock(t)
	h := useCaptureHandler(t)
	ch, s := fadeOut(t)
	p := NewPlayer(s, nil)
	defer p.Dispose()

	ch.Head().WithDuration(time.Second)
	p.Seek(0.5)
	assert.ErrorIs(t, p.Err(), choreoerrors.ErrUnscheduled)
	require.Len(t, h.errs, 1)
	assert.Equal(t, choreoerrors.KindUnscheduled, h.errs[0].Kind)
}

func TestPlayerRecoversCallbackPanic(t *testing.T) {
	clk := useStepClock(t)
	h := useCaptureHandler(t)
	ch := NewChain()
	ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0).
		OnStart(func(*Segment) { panic("boom") })
	s := build(t, ch)
	p := NewPlayer(s, nil)
	defer p.Dispose()

	p.Play()
	clk.advance(10 * ms)
	require.Len(t, h.panics, 1)
	assert.Equal(t, "boom", h.panics[0].Value)
	assert.False(t, p.Controller().IsAnimating())

	// The chain is usable again after the panic.
	_, err := s.Evaluate(0.5)
	assert.NoError(t, err)
}
