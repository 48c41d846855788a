package choreography

import (
	"github.com/go-drift/choreo/pkg/animation"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

// Player drives a schedule from an AnimationController and hands every
// evaluated frame to a sink. The controller's value is the global fraction;
// its duration is the schedule's total duration.
//
// Callback panics and evaluation errors stop playback and are reported to
// the errors package handler.
type Player struct {
	schedule *Schedule
	ctrl     *animation.AnimationController
	sink     func(Frame)
	unsub    func()
	last     float64
	muted    bool
	err      error
}

// NewPlayer creates a stopped player at fraction 0.
func NewPlayer(s *Schedule, sink func(Frame)) *Player {
	p := &Player{
		schedule: s,
		sink:     sink,
		ctrl:     animation.NewAnimationController(s.TotalDuration()),
	}
	p.unsub = p.ctrl.AddListener(p.tick)
	return p
}

// Controller exposes the driving controller, e.g. for status listeners.
func (p *Player) Controller() *animation.AnimationController { return p.ctrl }

// Fraction returns the current global fraction.
func (p *Player) Fraction() float64 { return p.ctrl.Value }

// Err returns the error that stopped playback, if any.
func (p *Player) Err() error { return p.err }

// Play runs the timeline forward from the current fraction.
func (p *Player) Play() { p.ctrl.Forward() }

// Loop makes playback restart from 0 after reaching 1. Every restart clears
// the schedule so events fire again.
func (p *Player) Loop(on bool) { p.ctrl.Repeat = on }

// Stop pauses at the current fraction.
func (p *Player) Stop() { p.ctrl.Stop() }

// Seek jumps to fraction f and evaluates it. Seeking backwards starts a new
// pass, so events before f fire again.
func (p *Player) Seek(f float64) { p.ctrl.Seek(f) }

// Reset stops playback, rewinds to 0 without evaluating, and sends a frame
// restoring every animated property to its start value.
func (p *Player) Reset() error {
	p.muted = true
	p.ctrl.Reset()
	p.muted = false
	p.last = 0
	samples, err := p.schedule.Reset()
	if err != nil {
		return err
	}
	p.deliver(Frame{Samples: samples})
	return nil
}

// Dispose stops playback and detaches from the controller.
func (p *Player) Dispose() {
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	p.ctrl.Dispose()
}

func (p *Player) tick() {
	if p.muted {
		return
	}
	defer choreoerrors.RecoverWithCallback("choreography.Player.tick", func(any) {
		p.ctrl.Stop()
	})

	f := p.ctrl.Value
	if f < p.last {
		// A loop wrap or a backward seek starts a new pass.
		if _, err := p.schedule.Reset(); err != nil {
			p.fail(err)
			return
		}
	}
	p.last = f

	frame, err := p.schedule.Evaluate(f)
	if err != nil {
		p.fail(err)
		return
	}
	p.deliver(frame)
}

func (p *Player) deliver(frame Frame) {
	if p.sink != nil {
		p.sink(frame)
	}
}

func (p *Player) fail(err error) {
	p.err = err
	p.ctrl.Stop()
	choreoerrors.Report(&choreoerrors.ChoreoError{
		Op:   "choreography.Player.tick",
		Kind: choreoerrors.KindOf(err),
		Err:  err,
	})
}
