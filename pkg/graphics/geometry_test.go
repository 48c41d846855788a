package graphics

import "testing"

func TestDistance(t *testing.T) {
	if d := Distance(Pt(0, 0), Pt(3, 4)); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
}

func TestUnionAll(t *testing.T) {
	got := UnionAll(
		RectFromLTWH(10, 10, 10, 10),
		RectFromLTWH(-5, 40, 5, 5),
		RectFromLTWH(30, 0, 1, 1),
	)
	want := Rect{Left: -5, Top: 0, Right: 31, Bottom: 45}
	if got != want {
		t.Errorf("UnionAll = %+v, want %+v", got, want)
	}
	if (UnionAll() != Rect{}) {
		t.Error("UnionAll() of nothing should be the zero rect")
	}
}

func TestRectPoints(t *testing.T) {
	r := RectFromLTWH(10, 20, 100, 50)
	if r.TopLeft() != Pt(10, 20) {
		t.Errorf("TopLeft = %v", r.TopLeft())
	}
	if r.Center() != Pt(60, 45) {
		t.Errorf("Center = %v", r.Center())
	}
	if r.IsEmpty() {
		t.Error("rect should not be empty")
	}
}

func TestInsetsComponents(t *testing.T) {
	in := Insets{Top: 1, Start: 2, End: 3, Bottom: 4}
	if InsetsFrom(in.Components()) != in {
		t.Error("InsetsFrom(Components()) should round trip")
	}
	if UniformRadii(2)[7] != 2 {
		t.Error("UniformRadii should fill every component")
	}
}
