package stagger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	choreoerrors "github.com/go-drift/choreo/pkg/errors"
	"github.com/go-drift/choreo/pkg/graphics"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

type span struct{ Start, End float64 }

func spans(ws []Window) map[string]span {
	out := make(map[string]span, len(ws))
	for _, w := range ws {
		out[w.Target] = span{w.Start, w.End}
	}
	return out
}

// row places items on the x axis at the given distances from the origin.
func row(distances ...float64) []Item {
	items := make([]Item, len(distances))
	for i, d := range distances {
		items[i] = Item{Target: string(rune('a' + i)), Position: graphics.Pt(d, 0)}
	}
	return items
}

func TestDistributeKinds(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		items []Item
		want  map[string]span
	}{
		{
			name:  "linear outward",
			spec:  Spec{Offset: 0.5},
			items: row(0, 10, 20),
			want:  map[string]span{"a": {0, 0.5}, "b": {0.25, 0.75}, "c": {0.5, 1}},
		},
		{
			name:  "linear inward",
			spec:  Spec{Offset: 0.5, Direction: Inward},
			items: row(0, 10, 20),
			want:  map[string]span{"c": {0, 0.5}, "b": {0.25, 0.75}, "a": {0.5, 1}},
		},
		{
			name:  "incremental",
			spec:  Spec{Offset: 0.6, Kind: Incremental},
			items: row(0, 1, 2, 3),
			want:  map[string]span{"a": {0, 0.4}, "b": {0.1, 0.5}, "c": {0.3, 0.7}, "d": {0.6, 1}},
		},
		{
			name:  "decremental",
			spec:  Spec{Offset: 0.6, Kind: Decremental},
			items: row(0, 1, 2, 3),
			want:  map[string]span{"a": {0, 0.4}, "b": {0.3, 0.7}, "c": {0.5, 0.9}, "d": {0.6, 1}},
		},
		{
			name:  "two groups fall back to linear",
			spec:  Spec{Offset: 0.5, Kind: Incremental},
			items: row(0, 5),
			want:  map[string]span{"a": {0, 0.5}, "b": {0.5, 1}},
		},
		{
			name:  "multiplier scales offset",
			spec:  Spec{Offset: 0.25, Multiplier: 2},
			items: row(0, 5),
			want:  map[string]span{"a": {0, 0.5}, "b": {0.5, 1}},
		},
		{
			name:  "saturated offset gives back-to-back slices",
			spec:  Spec{Offset: 1},
			items: row(0, 1, 2, 3),
			want:  map[string]span{"a": {0, 0.25}, "b": {0.25, 0.5}, "c": {0.5, 0.75}, "d": {0.75, 1}},
		},
		{
			name:  "zero offset",
			spec:  Spec{},
			items: row(0, 10),
			want:  map[string]span{"a": {0, 1}, "b": {0, 1}},
		},
		{
			name:  "single group",
			spec:  Spec{Offset: 0.5},
			items: []Item{{"a", graphics.Pt(3, 4)}, {"b", graphics.Pt(-4, 3)}},
			want:  map[string]span{"a": {0, 1}, "b": {0, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distribute(tt.spec, tt.items, graphics.Pt(0, 0), time.Second)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, spans(got), approx); diff != "" {
				t.Errorf("windows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDistributeDelays(t *testing.T) {
	got, err := Distribute(Spec{Offset: 0.6, Kind: Decremental}, row(0, 1, 2, 3), graphics.Pt(0, 0), time.Second)
	require.NoError(t, err)
	delays := []time.Duration{0, 300 * time.Millisecond, 500 * time.Millisecond, 600 * time.Millisecond}
	for i, w := range got {
		assert.Equal(t, delays[i], w.Delay, w.Target)
	}
}

func TestDistributeEqualDistancesShareWindows(t *testing.T) {
	items := []Item{
		{"east", graphics.Pt(10, 0)},
		{"north", graphics.Pt(0, -10)},
		{"diag", graphics.Pt(6, 8)},
		{"near", graphics.Pt(1, 0)},
	}
	got, err := Distribute(Spec{Offset: 0.4, Kind: Incremental}, items, graphics.Pt(0, 0), 800*time.Millisecond)
	require.NoError(t, err)
	s := spans(got)
	assert.Equal(t, s["east"], s["north"])
	assert.Equal(t, s["east"], s["diag"])
	assert.Less(t, s["near"].Start, s["east"].Start)
}

func TestDistributeIsDeterministic(t *testing.T) {
	items := row(7, 3, 3, 12, 0, 7)
	spec := Spec{Offset: 0.7, Kind: Decremental}
	first, err := Distribute(spec, items, graphics.Pt(0, 0), time.Second)
	require.NoError(t, err)

	reversed := make([]Item, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	second, err := Distribute(spec, reversed, graphics.Pt(0, 0), time.Second)
	require.NoError(t, err)

	if diff := cmp.Diff(spans(first), spans(second)); diff != "" {
		t.Errorf("input order changed windows:\n%s", diff)
	}
	again, _ := Distribute(spec, items, graphics.Pt(0, 0), time.Second)
	assert.Equal(t, first, again)
}

func TestDistributeWindowsStayInRange(t *testing.T) {
	for _, kind := range []Kind{Linear, Incremental, Decremental} {
		for _, offset := range []float64{0.1, 0.5, 0.9, 0.99} {
			got, err := Distribute(Spec{Offset: offset, Kind: kind}, row(0, 1, 2, 3, 4, 5, 6), graphics.Pt(0, 0), 1234*time.Millisecond)
			require.NoError(t, err)
			prev := -1.0
			for _, w := range got {
				assert.GreaterOrEqual(t, w.Start, 0.0)
				assert.LessOrEqual(t, w.End, 1.0+1e-9)
				assert.Less(t, w.Start, w.End)
				assert.GreaterOrEqual(t, w.Start, prev, "%v offset %v", kind, offset)
				prev = w.Start
			}
			assert.InDelta(t, offset, got[len(got)-1].Start, 1e-9, "last group starts after the whole stagger")
		}
	}
}

func TestDistributeUsesSpecEpicenter(t *testing.T) {
	center := graphics.Pt(20, 0)
	got, err := Distribute(Spec{Offset: 0.5, Epicenter: &center}, row(0, 10, 20), graphics.Pt(0, 0), time.Second)
	require.NoError(t, err)
	s := spans(got)
	assert.Equal(t, span{0, 0.5}, s["c"])
	assert.Equal(t, span{0.5, 1}, s["a"])
}

func TestDistributeRejectsBadSpecs(t *testing.T) {
	for _, spec := range []Spec{{Offset: -0.1}, {Offset: 1.5}, {Offset: 0.5, Multiplier: -1}} {
		_, err := Distribute(spec, row(0, 1), graphics.Pt(0, 0), time.Second)
		assert.True(t, errors.Is(err, choreoerrors.ErrInvalidOffset), "%+v: %v", spec, err)
	}
}

func TestDefaultEpicenter(t *testing.T) {
	got := DefaultEpicenter(graphics.RectFromLTWH(50, 40, 10, 10), graphics.RectFromLTWH(20, 90, 10, 10))
	assert.Equal(t, graphics.Pt(20, 40), got)
}

func TestWindowSpan(t *testing.T) {
	w := Window{Start: 0.25, End: 0.75}
	assert.Equal(t, 0.0, w.Span(0.1))
	assert.Equal(t, 0.5, w.Span(0.5))
	assert.Equal(t, 1.0, w.Span(0.9))
}

func TestParseNames(t *testing.T) {
	k, err := ParseKind("decremental")
	require.NoError(t, err)
	assert.Equal(t, Decremental, k)
	_, err = ParseKind("zigzag")
	assert.Error(t, err)
	d, err := ParseDirection("inward")
	require.NoError(t, err)
	assert.Equal(t, "inward", d.String())
}
