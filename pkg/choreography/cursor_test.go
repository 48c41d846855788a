package choreography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fourSegments() (*Chain, []*Segment) {
	ch := NewChain()
	a := ch.Animate(box("a", 0)).WithDuration(100 * ms)
	b := a.ThenAnimate(box("b", 20))
	c := b.ThenAnimate(box("c", 40))
	d := c.ThenAnimate(box("a", 0))
	return ch, []*Segment{a, b, c, d}
}

func visit(walk func(*Segment, func(*Cursor, *Segment)), from *Segment, hook func(*Cursor, *Segment)) []SegmentID {
	var ids []SegmentID
	walk(from, func(c *Cursor, s *Segment) {
		ids = append(ids, s.ID())
		if hook != nil {
			hook(c, s)
		}
	})
	return ids
}

func TestSuccessorsAndPredecessors(t *testing.T) {
	ch, segs := fourSegments()

	assert.Equal(t, []SegmentID{1, 2, 3, 4}, visit(ch.Successors, nil, nil))
	assert.Equal(t, []SegmentID{2, 3, 4}, visit(ch.Successors, segs[1], nil))
	assert.Equal(t, []SegmentID{4, 3, 2, 1}, visit(ch.Predecessors, nil, nil))
	assert.Equal(t, []SegmentID{3, 2, 1}, visit(ch.Predecessors, segs[2], nil))
}

func TestCursorBreak(t *testing.T) {
	ch, _ := fourSegments()
	ids := visit(ch.Successors, nil, func(c *Cursor, s *Segment) {
		if c.Index() == 1 {
			c.Break()
		}
	})
	assert.Equal(t, []SegmentID{1, 2}, ids)
}

func TestCursorSkipCurrentIsBounded(t *testing.T) {
	ch, _ := fourSegments()
	ids := visit(ch.Successors, nil, func(c *Cursor, s *Segment) { c.SkipCurrent() })

	assert.Len(t, ids, 4*(maxSkips+1))
	assert.Equal(t, SegmentID(4), ids[len(ids)-1])
}

func TestCursorSkipCurrentRevisits(t *testing.T) {
	ch, _ := fourSegments()
	skipped := false
	ids := visit(ch.Successors, nil, func(c *Cursor, s *Segment) {
		if s.ID() == 2 && !skipped {
			skipped = true
			c.SkipCurrent()
		}
	})
	assert.Equal(t, []SegmentID{1, 2, 2, 3, 4}, ids)
}

func TestTouchingLookups(t *testing.T) {
	ch, segs := fourSegments()

	assert.Same(t, segs[3], ch.LastTouching(nil, "a"))
	assert.Same(t, segs[0], ch.LastTouching(segs[2], "a"))
	assert.Same(t, segs[1], ch.FirstTouching(nil, "b", "c"))
	assert.Same(t, segs[3], ch.FirstTouching(segs[1], "a"))
	assert.Nil(t, ch.FirstTouching(nil, "missing"))
	assert.Nil(t, ch.LastTouching(&Segment{chain: ch}, "a"))
}
