package animation

import (
	"testing"

	"github.com/go-drift/choreo/pkg/graphics"
)

func TestLerpGeneric(t *testing.T) {
	if got := Lerp(0, 10, 0.26); got != 3 {
		t.Errorf("Lerp int = %v, want 3", got)
	}
	if got := Lerp(float32(0), 1, 0.25); got != 0.25 {
		t.Errorf("Lerp float32 = %v", got)
	}
	if got := Lerp(2.0, 4.0, 1.5); got != 5 {
		t.Errorf("Lerp extrapolates: %v", got)
	}
}

func TestLerpColorChannels(t *testing.T) {
	got := LerpColor(graphics.RGBA8(0, 100, 200, 0), graphics.RGBA8(200, 100, 0, 255), 0.5)
	if got != graphics.RGBA8(100, 100, 100, 128) {
		t.Errorf("LerpColor = %v", got)
	}
	// Overshooting curves must not wrap channels.
	if got := LerpColor(graphics.ColorBlack, graphics.ColorWhite, 1.2); got != graphics.ColorWhite {
		t.Errorf("LerpColor overshoot = %v", got)
	}
}

func TestLerpVectors(t *testing.T) {
	c := LerpCorners(graphics.CornerRadii{}, graphics.UniformRadii(8), 0.25)
	for i, v := range c {
		if v != 2 {
			t.Errorf("corner %d = %v", i, v)
		}
	}
	in := LerpInsets(graphics.Insets{Top: 10}, graphics.Insets{Bottom: 10}, 0.5)
	if in != (graphics.Insets{Top: 5, Bottom: 5}) {
		t.Errorf("LerpInsets = %+v", in)
	}
	if p := LerpPoint(graphics.Pt(0, 0), graphics.Pt(10, -10), 0.1); p != graphics.Pt(1, -1) {
		t.Errorf("LerpPoint = %v", p)
	}
}
