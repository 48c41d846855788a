package choreography

import (
	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/graphics"
)

// valueOps is the arithmetic a track needs for its value type. add and
// scale may be nil when modifiers make no sense for the type.
type valueOps[T comparable] struct {
	lerp  func(a, b T, t float64) T
	add   func(a, b T) T
	scale func(a T, k float64) T
}

var floatOps = valueOps[float64]{
	lerp:  animation.LerpFloat64,
	add:   func(a, b float64) float64 { return a + b },
	scale: func(a float64, k float64) float64 { return a * k },
}

var colorOps = valueOps[graphics.Color]{lerp: animation.LerpColor}

var cornerOps = valueOps[graphics.CornerRadii]{
	lerp: animation.LerpCorners,
	add: func(a, b graphics.CornerRadii) graphics.CornerRadii {
		for i := range a {
			a[i] += b[i]
		}
		return a
	},
	scale: func(a graphics.CornerRadii, k float64) graphics.CornerRadii {
		for i := range a {
			a[i] *= k
		}
		return a
	},
}

var insetOps = valueOps[graphics.Insets]{
	lerp: animation.LerpInsets,
	add: func(a, b graphics.Insets) graphics.Insets {
		return graphics.Insets{Top: a.Top + b.Top, Start: a.Start + b.Start, End: a.End + b.End, Bottom: a.Bottom + b.Bottom}
	},
	scale: func(a graphics.Insets, k float64) graphics.Insets {
		return graphics.Insets{Top: a.Top * k, Start: a.Start * k, End: a.End * k, Bottom: a.Bottom * k}
	},
}

// Track is one animatable property of a segment: a from/to pair, an optional
// dedicated curve and optional modifiers.
//
// Values left unset are resolved when the chain is built: from the nearest
// earlier segment that animates the same target, or from the target's
// snapshot. Modifiers are folded into To once, at build time; the authored
// track is never changed by a build.
type Track[T comparable] struct {
	property Property
	ops      valueOps[T]

	from, to       T
	hasFrom, hasTo bool
	curve          animation.Curve

	add      *T
	multiply *float64
}

func newTrack[T comparable](p Property, ops valueOps[T]) *Track[T] {
	return &Track[T]{property: p, ops: ops}
}

// Property returns the animated property.
func (t *Track[T]) Property() Property { return t.property }

// From returns the start value. Before a build it is the zero value unless
// set explicitly.
func (t *Track[T]) From() T { return t.from }

// To returns the end value.
func (t *Track[T]) To() T { return t.to }

// CanInterpolate reports whether the track changes anything.
func (t *Track[T]) CanInterpolate() bool { return t.from != t.to }

// SetFrom sets the start value.
func (t *Track[T]) SetFrom(v T) *Track[T] {
	t.from, t.hasFrom = v, true
	return t
}

// SetTo sets the end value.
func (t *Track[T]) SetTo(v T) *Track[T] {
	t.to, t.hasTo = v, true
	return t
}

// Between sets both values.
func (t *Track[T]) Between(from, to T) *Track[T] {
	return t.SetFrom(from).SetTo(to)
}

// WithCurve gives the track its own curve instead of the segment's.
func (t *Track[T]) WithCurve(c animation.Curve) *Track[T] {
	t.curve = c
	return t
}

// Add makes the end value the resolved start value plus delta when the
// chain is built. It has no effect on color tracks.
func (t *Track[T]) Add(delta T) *Track[T] {
	t.add = &delta
	return t
}

// Multiply makes the end value the resolved start value times k when the
// chain is built. It takes precedence over Add. It has no effect on color
// tracks.
func (t *Track[T]) Multiply(k float64) *Track[T] {
	t.multiply = &k
	return t
}

// FlipValues swaps the start and end values.
func (t *Track[T]) FlipValues() {
	t.from, t.to = t.to, t.from
	t.hasFrom, t.hasTo = t.hasTo, t.hasFrom
}

// Evaluate interpolates at fraction f using the track's own curve, or
// linearly when it has none.
func (t *Track[T]) Evaluate(f float64) T {
	if t.curve != nil {
		f = t.curve(f)
	}
	return t.ops.lerp(t.from, t.to, f)
}

// propertyTrack is the type-erased view of a Track used by segments and
// the scheduler.
type propertyTrack interface {
	Property() Property
	CanInterpolate() bool
	FlipValues()
	// compile returns a resolved copy: unset values taken from base,
	// modifiers applied to from and stored as to, and fallback baked in as the curve when
	// the track has none.
	compile(base *Properties, fallback animation.Curve) propertyTrack
	clone() propertyTrack
	eval(f float64) any
	fromValue() any
	toValue() any
}

func (t *Track[T]) compile(base *Properties, fallback animation.Curve) propertyTrack {
	c := *t
	current, _ := base.Value(t.property).(T)
	if !c.hasFrom {
		c.from = current
	}
	if !c.hasTo {
		c.to = current
	}
	if c.add != nil && c.ops.add != nil {
		c.to = c.ops.add(c.from, *c.add)
	}
	if c.multiply != nil && c.ops.scale != nil {
		c.to = c.ops.scale(c.from, *c.multiply)
	}
	c.add, c.multiply = nil, nil
	c.hasFrom, c.hasTo = true, true
	if c.curve == nil {
		c.curve = fallback
	}
	if c.curve == nil {
		c.curve = animation.LinearCurve
	}
	return &c
}

func (t *Track[T]) clone() propertyTrack {
	c := *t
	return &c
}

func (t *Track[T]) eval(f float64) any { return t.Evaluate(f) }
func (t *Track[T]) fromValue() any     { return t.from }
func (t *Track[T]) toValue() any       { return t.to }

// flipped returns a copy of a compiled track running backwards.
func flipped(t propertyTrack) propertyTrack {
	c := t.clone()
	c.FlipValues()
	return c
}
