package choreography

// maxSkips bounds how often SkipCurrent may revisit one segment in a row.
const maxSkips = 8

// Cursor controls a traversal from inside its hook.
type Cursor struct {
	index  int
	broken bool
	skip   bool
	skips  int
}

// Break stops the traversal after the current hook returns.
func (c *Cursor) Break() { c.broken = true }

// SkipCurrent makes the traversal visit the current position again. A
// position is revisited at most maxSkips times in a row.
func (c *Cursor) SkipCurrent() { c.skip = true }

// Index returns the chain index of the segment being visited.
func (c *Cursor) Index() int { return c.index }

// Successors walks from from toward the tail, from included. A nil from
// starts at the head.
func (ch *Chain) Successors(from *Segment, fn func(*Cursor, *Segment)) {
	start := 0
	if from != nil {
		if start = ch.indexOf(from); start < 0 {
			return
		}
	}
	ch.walk(start, 1, fn)
}

// Predecessors walks from from toward the head, from included. A nil from
// starts at the tail.
func (ch *Chain) Predecessors(from *Segment, fn func(*Cursor, *Segment)) {
	start := len(ch.segments) - 1
	if from != nil {
		if start = ch.indexOf(from); start < 0 {
			return
		}
	}
	ch.walk(start, -1, fn)
}

func (ch *Chain) walk(start, step int, fn func(*Cursor, *Segment)) {
	c := &Cursor{index: start}
	for c.index >= 0 && c.index < len(ch.segments) {
		c.skip = false
		fn(c, ch.segments[c.index])
		if c.broken {
			return
		}
		if c.skip && c.skips < maxSkips {
			c.skips++
			continue
		}
		c.skips = 0
		c.index += step
	}
}

// LastTouching returns the nearest segment at or before from that animates
// any of ids, or nil. A nil from searches from the tail.
func (ch *Chain) LastTouching(from *Segment, ids ...TargetID) *Segment {
	var found *Segment
	ch.Predecessors(from, func(c *Cursor, s *Segment) {
		if s.Touches(ids...) {
			found = s
			c.Break()
		}
	})
	return found
}

// FirstTouching returns the nearest segment at or after from that animates
// any of ids, or nil. A nil from searches from the head.
func (ch *Chain) FirstTouching(from *Segment, ids ...TargetID) *Segment {
	var found *Segment
	ch.Successors(from, func(c *Cursor, s *Segment) {
		if s.Touches(ids...) {
			found = s
			c.Break()
		}
	})
	return found
}
