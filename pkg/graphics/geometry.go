package graphics

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Point is a 2D coordinate in pixels: index 0 is x, index 1 is y.
type Point = f64.Vec2

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{x, y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point {
	return Point{r.Left, r.Top}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{(r.Left + r.Right) * 0.5, (r.Top + r.Bottom) * 0.5}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Union returns the smallest rect containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// UnionAll returns the bounds enclosing every rect. It returns the zero Rect
// when rects is empty.
func UnionAll(rects ...Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	u := rects[0]
	for _, r := range rects[1:] {
		u = u.Union(r)
	}
	return u
}

// CornerRadii holds per-corner radii as x/y pairs, clockwise from the
// top-left corner: TLx, TLy, TRx, TRy, BRx, BRy, BLx, BLy.
type CornerRadii [8]float64

// UniformRadii returns radii with every component set to r.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{r, r, r, r, r, r, r, r}
}

// Insets holds per-side distances used for margins and paddings.
type Insets struct {
	Top    float64
	Start  float64
	End    float64
	Bottom float64
}

// UniformInsets returns insets with every side set to v.
func UniformInsets(v float64) Insets {
	return Insets{Top: v, Start: v, End: v, Bottom: v}
}

// Components returns the sides in Top, Start, End, Bottom order.
func (i Insets) Components() [4]float64 {
	return [4]float64{i.Top, i.Start, i.End, i.Bottom}
}

// InsetsFrom is the inverse of Components.
func InsetsFrom(c [4]float64) Insets {
	return Insets{Top: c[0], Start: c[1], End: c[2], Bottom: c[3]}
}
