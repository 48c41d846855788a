// Package stagger spreads one segment's local time across many targets so
// the animation ripples away from, or toward, an epicenter.
//
// Targets are grouped by their distance from the epicenter. Every group plays
// for the same share of the segment; the groups' start times are spread over
// the part of the segment reserved for delay, which is Offset·Multiplier of
// the whole. Equal distances always receive identical windows.
package stagger

import (
	"fmt"
	"math"
	"slices"
	"time"

	choreoerrors "github.com/go-drift/choreo/pkg/errors"
	"github.com/go-drift/choreo/pkg/graphics"
)

// Kind shapes how the delay between consecutive groups evolves.
type Kind int

const (
	// Linear uses the same delay between every pair of groups.
	Linear Kind = iota
	// Incremental starts with short gaps that grow toward the last group.
	Incremental
	// Decremental starts with long gaps that shrink toward the last group.
	Decremental
)

func (k Kind) String() string {
	switch k {
	case Linear:
		return "linear"
	case Incremental:
		return "incremental"
	case Decremental:
		return "decremental"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name. The empty string means Linear.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "linear":
		return Linear, nil
	case "incremental":
		return Incremental, nil
	case "decremental":
		return Decremental, nil
	}
	return Linear, fmt.Errorf("unknown stagger kind %q", s)
}

// Direction selects which end of the ripple starts first.
type Direction int

const (
	// Outward starts nearest the epicenter; farther targets start later.
	Outward Direction = iota
	// Inward starts farthest from the epicenter.
	Inward
)

func (d Direction) String() string {
	if d == Inward {
		return "inward"
	}
	return "outward"
}

// ParseDirection parses "outward" or "inward". The empty string means Outward.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "outward":
		return Outward, nil
	case "inward":
		return Inward, nil
	}
	return Outward, fmt.Errorf("unknown stagger direction %q", s)
}

// Spec describes a stagger.
type Spec struct {
	// Offset in [0, 1] is the share of the segment spent on inter-group delay.
	Offset float64
	// Multiplier scales Offset. Zero means 1.
	Multiplier float64
	Kind       Kind
	Direction  Direction
	// Epicenter is the ripple origin. Nil means the top-left corner of the
	// union of the targets' bounds.
	Epicenter *graphics.Point
}

// Validate rejects offsets outside [0, 1] and negative multipliers.
func (s Spec) Validate() error {
	if s.Offset < 0 || s.Offset > 1 || math.IsNaN(s.Offset) {
		return &choreoerrors.InvalidOffsetError{Field: "stagger offset", Value: s.Offset}
	}
	if s.Multiplier < 0 || math.IsNaN(s.Multiplier) {
		return &choreoerrors.InvalidOffsetError{Field: "stagger multiplier", Value: s.Multiplier}
	}
	return nil
}

// Effective returns Offset·Multiplier clamped to [0, 1].
func (s Spec) Effective() float64 {
	m := s.Multiplier
	if m == 0 {
		m = 1
	}
	return min(max(s.Offset*m, 0), 1)
}

// Item is one target taking part in a stagger.
type Item struct {
	Target   string
	Position graphics.Point
}

// Window is the local time window assigned to one target. Start and End are
// fractions of the owning segment's duration.
type Window struct {
	Target   string
	Distance float64
	// Delay is the absolute delay from the segment start.
	Delay time.Duration
	Start float64
	End   float64
}

// Span maps a segment-local fraction into this window's own [0, 1] range.
func (w Window) Span(local float64) float64 {
	if w.End <= w.Start {
		if local >= w.End {
			return 1
		}
		return 0
	}
	return min(max((local-w.Start)/(w.End-w.Start), 0), 1)
}

// DefaultEpicenter returns the top-left corner of the union of bounds.
func DefaultEpicenter(bounds ...graphics.Rect) graphics.Point {
	return graphics.UnionAll(bounds...).TopLeft()
}

// distanceQuantum absorbs float noise so visually equal distances group.
const distanceQuantum = 1e-6

// Distribute computes one window per item, in input order. epicenter is used
// when spec.Epicenter is nil. The result depends only on its inputs.
func Distribute(spec Spec, items []Item, epicenter graphics.Point, duration time.Duration) ([]Window, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Epicenter != nil {
		epicenter = *spec.Epicenter
	}

	windows := make([]Window, len(items))
	for i, it := range items {
		d := graphics.Distance(epicenter, it.Position)
		windows[i] = Window{
			Target:   it.Target,
			Distance: math.Round(d/distanceQuantum) * distanceQuantum,
			End:      1,
		}
	}

	groups := groupByDistance(windows, spec.Direction)
	offset := spec.Effective()
	n := len(groups)
	if offset == 0 || duration <= 0 || n < 2 {
		return windows, nil
	}

	if offset >= 1 {
		// No play time would be left; fall back to back-to-back slices.
		slice := float64(duration) / float64(n)
		for k, g := range groups {
			for _, i := range g {
				windows[i].Start = float64(k) / float64(n)
				windows[i].End = float64(k+1) / float64(n)
				windows[i].Delay = time.Duration(math.Round(float64(k) * slice))
			}
		}
		return windows, nil
	}

	total := float64(duration)
	stagger := total * offset
	play := total - stagger
	steps := float64(n - 1)

	kind := spec.Kind
	if n <= 2 {
		// The shaped kinds need at least two gaps.
		kind = Linear
	}

	var addition, fragment, acc float64
	switch kind {
	case Incremental:
		addition = stagger / steps / 2
		fragment = stagger / steps / float64(n-2)
	case Decremental:
		addition = stagger / steps
		fragment = stagger / steps / float64(n-2)
		acc = stagger / steps / 2
	default:
		addition = stagger / steps
	}

	delay := 0.0
	for _, g := range groups {
		start := delay / total
		end := (delay + play) / total
		for _, i := range g {
			windows[i].Start = min(start, 1)
			windows[i].End = min(end, 1)
			windows[i].Delay = time.Duration(math.Round(delay))
		}
		switch kind {
		case Incremental:
			delay += addition + acc
			acc += fragment
		case Decremental:
			delay += addition + acc
			acc -= fragment
		default:
			delay += addition
		}
	}
	return windows, nil
}

// groupByDistance returns indexes into windows grouped by equal distance,
// ordered so the first group starts first.
func groupByDistance(windows []Window, dir Direction) [][]int {
	order := make([]int, len(windows))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		da, db := windows[a].Distance, windows[b].Distance
		if dir == Inward {
			da, db = db, da
		}
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})

	var groups [][]int
	for _, i := range order {
		last := len(groups) - 1
		if last >= 0 && windows[groups[last][0]].Distance == windows[i].Distance {
			groups[last] = append(groups[last], i)
			continue
		}
		groups = append(groups, []int{i})
	}
	return groups
}
