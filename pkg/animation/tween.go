package animation

import (
	"math"

	"golang.org/x/exp/constraints"

	"github.com/go-drift/choreo/pkg/graphics"
)

// Tween interpolates between Begin and End values based on progress.
//
// See ExampleTween for usage.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// Transform returns the interpolated value using the controller's current value.
func (tw *Tween[T]) Transform(controller *AnimationController) T {
	return tw.Evaluate(controller.Value)
}

// Lerp linearly interpolates between two numbers. Integer results are
// rounded to the nearest value.
func Lerp[T constraints.Integer | constraints.Float](a, b T, t float64) T {
	v := float64(a) + (float64(b)-float64(a))*t
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(v)
	}
	return T(math.Round(v))
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// LerpColor interpolates each ARGB channel independently.
func LerpColor(a, b graphics.Color, t float64) graphics.Color {
	aA, aR, aG, aB := a.Channels()
	bA, bR, bG, bB := b.Channels()
	return graphics.RGBA8(
		lerpChannel(aR, bR, t),
		lerpChannel(aG, bG, t),
		lerpChannel(aB, bB, t),
		lerpChannel(aA, bA, t),
	)
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Round(clampUnit(Lerp(float64(a), float64(b), t)/255) * 255))
}

// LerpPoint interpolates both coordinates of a point.
func LerpPoint(a, b graphics.Point, t float64) graphics.Point {
	return graphics.Point{LerpFloat64(a[0], b[0], t), LerpFloat64(a[1], b[1], t)}
}

// LerpCorners interpolates each corner radius component independently.
func LerpCorners(a, b graphics.CornerRadii, t float64) graphics.CornerRadii {
	var out graphics.CornerRadii
	for i := range out {
		out[i] = LerpFloat64(a[i], b[i], t)
	}
	return out
}

// LerpInsets interpolates each side independently.
func LerpInsets(a, b graphics.Insets, t float64) graphics.Insets {
	return graphics.Insets{
		Top:    LerpFloat64(a.Top, b.Top, t),
		Start:  LerpFloat64(a.Start, b.Start, t),
		End:    LerpFloat64(a.End, b.End, t),
		Bottom: LerpFloat64(a.Bottom, b.Bottom, t),
	}
}

// TweenFloat64 creates a tween for float64 values.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

// TweenColor creates a tween for Color values.
func TweenColor(begin, end graphics.Color) *Tween[graphics.Color] {
	return &Tween[graphics.Color]{Begin: begin, End: end, Lerp: LerpColor}
}

// TweenCorners creates a tween for corner radii.
func TweenCorners(begin, end graphics.CornerRadii) *Tween[graphics.CornerRadii] {
	return &Tween[graphics.CornerRadii]{Begin: begin, End: end, Lerp: LerpCorners}
}

// TweenInsets creates a tween for margins or paddings.
func TweenInsets(begin, end graphics.Insets) *Tween[graphics.Insets] {
	return &Tween[graphics.Insets]{Begin: begin, End: end, Lerp: LerpInsets}
}
