package choreography

import (
	"slices"
)

// ThenAnimate adds a segment that starts when this one ends. Without
// targets it animates the same targets.
func (s *Segment) ThenAnimate(targets ...*Target) *Segment {
	return s.follow("ThenAnimate", 1, targets)
}

// AlsoAnimate adds a segment that starts together with this one.
func (s *Segment) AlsoAnimate(targets ...*Target) *Segment {
	return s.follow("AlsoAnimate", 0, targets)
}

// AnimateAfter adds a segment that starts when this one is offset·100% done.
func (s *Segment) AnimateAfter(offset float64, targets ...*Target) *Segment {
	return s.follow("AnimateAfter", offset, targets)
}

// AndAnimate adds a copy of this segment, starting together with it,
// applied to other targets.
func (s *Segment) AndAnimate(targets ...*Target) *Segment {
	return s.AndAnimateAfter(0, targets...)
}

// AndAnimateAfter adds a copy of this segment applied to other targets,
// starting when this one is offset·100% done.
func (s *Segment) AndAnimateAfter(offset float64, targets ...*Target) *Segment {
	n := s.follow("AndAnimateAfter", offset, targets)
	n.copySettings(s)
	return n
}

// ReverseAnimate adds a segment, starting when this one ends, that plays the
// most recent segment touching targets backwards. Without targets it
// reverses the most recent segment touching this segment's targets.
func (s *Segment) ReverseAnimate(targets ...*Target) *Segment {
	return s.reverse("ReverseAnimate", 1, targets)
}

// AndReverseAnimate is ReverseAnimate starting together with this segment.
func (s *Segment) AndReverseAnimate(targets ...*Target) *Segment {
	return s.reverse("AndReverseAnimate", 0, targets)
}

func (s *Segment) reverse(op string, offset float64, targets []*Target) *Segment {
	if len(targets) == 0 {
		targets = s.targets
	}
	source := s.chain.LastTouching(s, targetIDs(targets)...)
	if source == nil {
		source = s
	}
	n := s.follow(op, offset, targets)
	n.copySettings(source)
	n.FlipValues()
	n.reverseFlag = true
	n.reverseOf = source
	return n
}

// follow creates a segment after s. When the chain rejects the edit the
// segment is returned detached so fluent calls stay safe.
func (s *Segment) follow(op string, offset float64, targets []*Target) *Segment {
	ch := s.chain
	if len(targets) == 0 {
		targets = s.targets
	}
	n := ch.newSegment(targets)
	if !validOffset(offset) {
		n.invalid("offset", offset)
		offset = 0
	}
	n.offset = offset
	if ch.inherit {
		n.duration = s.duration
		n.curve = s.curve
		if s.arc != nil {
			a := *s.arc
			n.arc = &a
		}
	}
	if err := ch.mutate(op); err != nil {
		return n
	}
	ch.insertAfter(s, n)
	ch.log.Debug().Str("op", op).Int("segment", int(n.id)).Int("parent", int(s.id)).Msg("segment added")
	return n
}

// copySettings copies timing, curve, tracks and effects from src. Callbacks
// and the offset are not copied.
func (s *Segment) copySettings(src *Segment) {
	s.duration = src.duration
	s.delay = src.delay
	s.curve = src.curve
	s.repeat = src.repeat
	if src.stagger != nil {
		st := *src.stagger
		s.stagger = &st
	}
	if src.arc != nil {
		a := *src.arc
		s.arc = &a
	}
	for p := range propertyCount {
		if t := src.tracks[p]; t != nil {
			s.tracks[p] = t.clone()
		}
		if k := src.keyframes[p]; k != nil {
			s.keyframes[p] = k.clone()
		}
	}
}

// Clone returns a detached copy of s applied to targets, or to the same
// targets when none are given. The copy keeps the chain's ids but is not
// part of its order.
func (s *Segment) Clone(targets ...*Target) *Segment {
	if len(targets) == 0 {
		targets = s.targets
	}
	n := s.chain.newSegment(targets)
	n.copySettings(s)
	n.offset = s.offset
	n.reverseFlag = s.reverseFlag
	n.reverseOf = s.reverseOf
	return n
}

// FlipValues swaps from and to on every track and reverses keyframes.
func (s *Segment) FlipValues() *Segment {
	for p := range propertyCount {
		if t := s.tracks[p]; t != nil {
			t.FlipValues()
		}
		if k := s.keyframes[p]; k != nil {
			s.keyframes[p] = k.reversed()
		}
	}
	return s
}

// hasTrack reports whether the segment animates p.
func (s *Segment) hasTrack(p Property) bool {
	return s.tracks[p] != nil || s.keyframes[p] != nil
}

// Remove detaches s from its chain. Its child takes its place and keeps its
// own offset.
func (s *Segment) Remove() error {
	ch := s.chain
	i := ch.indexOf(s)
	if i < 0 {
		return nil
	}
	if err := ch.mutate("Remove"); err != nil {
		return err
	}
	ch.segments = slices.Delete(ch.segments, i, i+1)
	return nil
}
