// Package arc computes curved translations between two points along a
// quadratic Bézier curve.
package arc

import (
	"fmt"

	"github.com/go-drift/choreo/pkg/graphics"
)

// Kind selects which corner of the from/to bounding box becomes the
// control point.
type Kind int

const (
	// Outer bends the path through (to.x, from.y): horizontal first.
	Outer Kind = iota
	// Inner bends the path through (from.x, to.y): vertical first.
	Inner
)

func (k Kind) String() string {
	switch k {
	case Outer:
		return "outer"
	case Inner:
		return "inner"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "outer" or "inner".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "outer", "":
		return Outer, nil
	case "inner":
		return Inner, nil
	}
	return Outer, fmt.Errorf("unknown arc kind %q", s)
}

// ControlPoint returns the control point for a path from from to to.
func ControlPoint(kind Kind, from, to graphics.Point) graphics.Point {
	if kind == Inner {
		return graphics.Point{from[0], to[1]}
	}
	return graphics.Point{to[0], from[1]}
}

// CurvedPosition evaluates P(t) = (1−t)²·from + 2(1−t)t·control + t²·to
// independently per axis. t is not clamped, so overshooting easings carry
// past the endpoints along the curve.
func CurvedPosition(t float64, from, to, control graphics.Point) graphics.Point {
	return graphics.Point{
		bezier(t, from[0], control[0], to[0]),
		bezier(t, from[1], control[1], to[1]),
	}
}

func bezier(t, start, control, end float64) float64 {
	inv := 1 - t
	return inv*inv*start + 2*inv*t*control + t*t*end
}

// Path is a curved translation with a fixed control point.
type Path struct {
	From    graphics.Point
	To      graphics.Point
	Control graphics.Point
}

// NewPath builds a path whose control point is chosen by kind.
func NewPath(kind Kind, from, to graphics.Point) Path {
	return Path{From: from, To: to, Control: ControlPoint(kind, from, to)}
}

// At returns the position at progress t.
func (p Path) At(t float64) graphics.Point {
	return CurvedPosition(t, p.From, p.To, p.Control)
}

// Reversed returns the same curve traversed from To back to From.
func (p Path) Reversed() Path {
	return Path{From: p.To, To: p.From, Control: p.Control}
}
