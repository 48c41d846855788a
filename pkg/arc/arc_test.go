package arc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/choreo/pkg/graphics"
)

func TestControlPoint(t *testing.T) {
	from, to := graphics.Pt(0, 0), graphics.Pt(100, 50)
	assert.Equal(t, graphics.Pt(100, 0), ControlPoint(Outer, from, to))
	assert.Equal(t, graphics.Pt(0, 50), ControlPoint(Inner, from, to))
}

func TestCurvedPositionEndpoints(t *testing.T) {
	p := NewPath(Outer, graphics.Pt(10, 20), graphics.Pt(110, 220))
	assert.Equal(t, p.From, p.At(0))
	assert.Equal(t, p.To, p.At(1))
}

func TestCurvedPositionMidpoint(t *testing.T) {
	// At t=0.5 the weights are 1/4, 1/2, 1/4.
	got := CurvedPosition(0.5, graphics.Pt(0, 0), graphics.Pt(100, 100), graphics.Pt(100, 0))
	assert.InDelta(t, 75, got[0], 1e-9)
	assert.InDelta(t, 25, got[1], 1e-9)

	inner := NewPath(Inner, graphics.Pt(0, 0), graphics.Pt(100, 100)).At(0.5)
	assert.InDelta(t, 25, inner[0], 1e-9)
	assert.InDelta(t, 75, inner[1], 1e-9)
}

func TestReversedPathMirrorsProgress(t *testing.T) {
	p := NewPath(Outer, graphics.Pt(-30, 5), graphics.Pt(70, 90))
	r := p.Reversed()
	for _, tt := range []float64{0, 0.2, 0.5, 0.9, 1} {
		a, b := p.At(tt), r.At(1-tt)
		assert.InDelta(t, a[0], b[0], 1e-9)
		assert.InDelta(t, a[1], b[1], 1e-9)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("inner")
	assert.NoError(t, err)
	assert.Equal(t, Inner, k)
	k, err = ParseKind("")
	assert.NoError(t, err)
	assert.Equal(t, Outer, k)
	_, err = ParseKind("sideways")
	assert.Error(t, err)
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
