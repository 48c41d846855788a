package choreography

import (
	"math"
	"time"

	"github.com/go-drift/choreo/pkg/animation"
)

// Keyframes animates a scalar property through evenly spaced breakpoints.
// The segment's play time is split into len(Values)-1 equal intervals; the
// curve applies within each interval.
type Keyframes struct {
	Property Property
	Values   []float64
	Curve    animation.Curve
}

// At returns the value after playTime of a segment lasting duration.
func (k *Keyframes) At(playTime, duration time.Duration) float64 {
	n := len(k.Values)
	switch {
	case n == 0:
		return 0
	case n == 1:
		return k.Values[0]
	}
	if duration <= 0 {
		if playTime > 0 {
			return k.Values[n-1]
		}
		return k.Values[0]
	}

	delta := float64(duration) / float64(n-1)
	pos := float64(playTime) / delta
	i := int(math.Floor(pos))
	i = min(max(i, 0), n-2)
	sub := min(max(pos-float64(i), 0), 1)
	if k.Curve != nil {
		sub = k.Curve(sub)
	}
	return animation.LerpFloat64(k.Values[i], k.Values[i+1], sub)
}

// First returns the first breakpoint.
func (k *Keyframes) First() float64 {
	if len(k.Values) == 0 {
		return 0
	}
	return k.Values[0]
}

// Last returns the last breakpoint.
func (k *Keyframes) Last() float64 {
	if len(k.Values) == 0 {
		return 0
	}
	return k.Values[len(k.Values)-1]
}

func (k *Keyframes) clone() *Keyframes {
	c := *k
	c.Values = append([]float64(nil), k.Values...)
	return &c
}

// reversed returns a copy playing the breakpoints backwards.
func (k *Keyframes) reversed() *Keyframes {
	c := k.clone()
	for i, j := 0, len(c.Values)-1; i < j; i, j = i+1, j-1 {
		c.Values[i], c.Values[j] = c.Values[j], c.Values[i]
	}
	return c
}
