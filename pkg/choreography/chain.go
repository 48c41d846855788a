// Package choreography composes independently authored animation segments
// into one timeline driven by a single global fraction in [0, 1].
//
// A [Chain] is a linear sequence of [Segment]s. Every segment after the head
// starts at an offset relative to its parent: 0 starts together with the
// parent, 1 starts when the parent ends, and anything in between starts part
// way through it. [Chain.Build] flattens those relative offsets into absolute
// windows once; [Schedule.Evaluate] then maps each tick's global fraction into
// per-segment progress, interpolated property values and start/end events.
//
//	chain := choreography.NewChain()
//	chain.Animate(card).WithDuration(300 * time.Millisecond).AlphaTo(0).
//	    ThenAnimate().TranslateTo(0, 120).
//	    ReverseAnimate()
//	schedule, err := chain.Build()
//	frame, err := schedule.Evaluate(0.5)
package choreography

import (
	"slices"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/choreo/pkg/animation"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

// DefaultDuration is the duration of segments on chains created without
// WithDefaultDuration.
const DefaultDuration = 300 * time.Millisecond

// SegmentID identifies a segment within one chain.
type SegmentID int

// IDAllocator hands out segment ids for the lifetime of one chain.
type IDAllocator struct {
	next SegmentID
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// Next returns a fresh id.
func (a *IDAllocator) Next() SegmentID {
	a.next++
	return a.next
}

// Option configures a Chain.
type Option func(*Chain)

// WithDefaultDuration sets the duration of new head segments.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Chain) { c.defaultDuration = d }
}

// WithDefaultCurve sets the curve used by segments that have none.
func WithDefaultCurve(curve animation.Curve) Option {
	return func(c *Chain) { c.defaultCurve = curve }
}

// WithInheritance controls whether new segments copy duration, curve and arc
// settings from their parent. It is on by default.
func WithInheritance(inherit bool) Option {
	return func(c *Chain) { c.inherit = inherit }
}

// WithLogger sets the logger used for build and mutation diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Chain) { c.log = l }
}

// WithIDs makes the chain draw segment ids from a.
func WithIDs(a *IDAllocator) Option {
	return func(c *Chain) { c.ids = a }
}

// Chain is an ordered sequence of segments. The segment at index i is the
// parent of the one at i+1.
//
// A chain is not safe for concurrent use. Structural edits made while a
// build or evaluate pass is running, for example from an event callback,
// are rejected with a StructuralMutationError.
type Chain struct {
	segments        []*Segment
	ids             *IDAllocator
	defaultDuration time.Duration
	defaultCurve    animation.Curve
	inherit         bool
	log             zerolog.Logger

	generation uint64
	busy       atomic.Bool
	err        error
}

// NewChain returns an empty chain.
func NewChain(opts ...Option) *Chain {
	c := &Chain{
		defaultDuration: DefaultDuration,
		defaultCurve:    animation.LinearCurve,
		inherit:         true,
		log:             zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ids == nil {
		c.ids = NewIDAllocator()
	}
	return c
}

// Animate starts the chain with a head segment animating targets. On a
// non-empty chain it behaves like ThenAnimate on the tail.
func (c *Chain) Animate(targets ...*Target) *Segment {
	if tail := c.Tail(); tail != nil {
		return tail.ThenAnimate(targets...)
	}
	s := c.newSegment(targets)
	if err := c.mutate("Animate"); err != nil {
		return s
	}
	c.segments = append(c.segments, s)
	return s
}

// Head returns the first segment, or nil.
func (c *Chain) Head() *Segment {
	if len(c.segments) == 0 {
		return nil
	}
	return c.segments[0]
}

// Tail returns the last segment, or nil.
func (c *Chain) Tail() *Segment {
	if len(c.segments) == 0 {
		return nil
	}
	return c.segments[len(c.segments)-1]
}

// Len returns the number of segments.
func (c *Chain) Len() int { return len(c.segments) }

// Segments returns the segments from head to tail.
func (c *Chain) Segments() []*Segment {
	return slices.Clone(c.segments)
}

// Segment returns the segment with the given id, or nil.
func (c *Chain) Segment(id SegmentID) *Segment {
	for _, s := range c.segments {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Err returns the first authoring error recorded on the chain: an invalid
// timing value or an edit attempted during a pass. Build fails with it.
func (c *Chain) Err() error { return c.err }

// Append moves every segment of other after this chain's tail. The head of
// other starts at offset relative to the tail. other is left empty.
func (c *Chain) Append(other *Chain, offset float64) error {
	if err := c.checkJoin("Append", other, offset); err != nil {
		return err
	}
	if len(other.segments) == 0 {
		return nil
	}
	moved := c.adopt(other)
	if len(c.segments) > 0 {
		moved[0].offset = offset
	}
	c.segments = append(c.segments, moved...)
	return nil
}

// Prepend moves every segment of other before this chain's head. The old
// head starts at offset relative to other's tail. other is left empty.
func (c *Chain) Prepend(other *Chain, offset float64) error {
	if err := c.checkJoin("Prepend", other, offset); err != nil {
		return err
	}
	if len(other.segments) == 0 {
		return nil
	}
	moved := c.adopt(other)
	if len(c.segments) > 0 {
		c.segments[0].offset = offset
	}
	moved[0].offset = 0
	c.segments = append(moved, c.segments...)
	return nil
}

func (c *Chain) checkJoin(op string, other *Chain, offset float64) error {
	if other == nil || other == c {
		return &choreoerrors.ChoreoError{Op: "choreography.Chain." + op, Kind: choreoerrors.KindUnknown, Err: errSelfJoin}
	}
	if !validOffset(offset) {
		return &choreoerrors.InvalidOffsetError{Field: "offset", Value: offset}
	}
	if other.busy.Load() {
		return &choreoerrors.StructuralMutationError{Op: op}
	}
	if err := other.mutate(op); err != nil {
		return err
	}
	return c.mutate(op)
}

// adopt takes other's segments and gives them ids from this chain.
func (c *Chain) adopt(other *Chain) []*Segment {
	moved := other.segments
	other.segments = nil
	for _, s := range moved {
		s.chain = c
		s.id = c.ids.Next()
	}
	return moved
}

func (c *Chain) newSegment(targets []*Target) *Segment {
	s := &Segment{
		chain:    c,
		id:       c.ids.Next(),
		targets:  slices.Clone(targets),
		duration: c.defaultDuration,
	}
	s.snapshot = make([]Properties, len(targets))
	for i, t := range targets {
		s.snapshot[i] = t.Props
	}
	return s
}

func (c *Chain) indexOf(s *Segment) int {
	return slices.Index(c.segments, s)
}

func (c *Chain) insertAfter(parent, s *Segment) {
	i := c.indexOf(parent)
	if i < 0 {
		c.segments = append(c.segments, s)
		return
	}
	c.segments = slices.Insert(c.segments, i+1, s)
}

// mutate guards an edit: it fails while a pass is running and otherwise
// invalidates any schedule built from the chain.
func (c *Chain) mutate(op string) error {
	if c.busy.Load() {
		err := &choreoerrors.StructuralMutationError{Op: op}
		c.fail(err)
		c.log.Warn().Str("op", op).Msg("chain edited during a pass")
		return err
	}
	c.generation++
	return nil
}

// fail records the first authoring error.
func (c *Chain) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// enter marks the start of a build or evaluate pass.
func (c *Chain) enter(op string) error {
	if !c.busy.CompareAndSwap(false, true) {
		return &choreoerrors.StructuralMutationError{Op: op}
	}
	return nil
}

func (c *Chain) leave() { c.busy.Store(false) }
