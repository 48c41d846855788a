package choreography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/animation"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

func TestAnimateOnNonEmptyChainAppends(t *testing.T) {
	ch := NewChain()
	head := ch.Animate(box("a", 0)).WithDuration(100 * ms)
	next := ch.Animate(box("b", 20))

	assert.Equal(t, 2, ch.Len())
	assert.Same(t, head, next.Parent())
	assert.Same(t, next, head.Child())
	assert.Equal(t, 1.0, next.Offset())
	assert.Nil(t, head.Parent())
	assert.Nil(t, next.Child())
}

func TestInheritance(t *testing.T) {
	curve := animation.EaseIn
	ch := NewChain()
	seg := ch.Animate(box("a", 0)).WithDuration(120 * ms).WithCurve(curve).WithDelay(40 * ms).
		ThenAnimate()
	assert.Equal(t, 120*ms, seg.Duration())
	assert.NotNil(t, seg.Curve())
	assert.Zero(t, seg.Delay())

	ch = NewChain(WithInheritance(false), WithDefaultDuration(50*ms))
	seg = ch.Animate(box("a", 0)).WithDuration(120 * ms).WithCurve(curve).
		ThenAnimate()
	assert.Equal(t, 50*ms, seg.Duration())
	assert.Nil(t, seg.Curve())
}

func TestDefaultCurve(t *testing.T) {
	ch := NewChain(WithDefaultCurve(func(f float64) float64 { return f * f }))
	ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0)
	s := build(t, ch)
	assert.InDelta(t, 0.75, scalarAt(t, evaluate(t, s, 0.5), "a", Alpha), 1e-9)
}

func TestAndAnimateCopiesTracks(t *testing.T) {
	ch := NewChain()
	seg := ch.Animate(box("a", 0)).WithDuration(100*ms).AlphaTo(0).RotateTo(30).
		AndAnimate(box("b", 20))

	assert.Equal(t, 0.0, seg.Offset())
	assert.Equal(t, []TargetID{"b"}, seg.TargetIDs())
	assert.Equal(t, []Property{Alpha, Rotation}, seg.Properties())

	frame := evaluate(t, build(t, ch), 1)
	assert.InDelta(t, 30.0, scalarAt(t, frame, "b", Rotation), 1e-9)

	later := seg.AndAnimateAfter(0.5, box("c", 40))
	assert.Equal(t, 0.5, later.Offset())
}

func TestCopiedTracksAreIndependent(t *testing.T) {
	ch := NewChain()
	a := ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0)
	b := a.AndAnimate(box("b", 20))
	b.AlphaTo(0.5)

	assert.Equal(t, 0.0, a.Float(Alpha).To())
	assert.Equal(t, 0.5, b.Float(Alpha).To())
}

func TestReverseAnimateFlipsValues(t *testing.T) {
	ch := NewChain()
	src := ch.Animate(box("a", 0)).WithDuration(100 * ms)
	src.Float(Alpha).Between(0.2, 0.8)
	rev := src.ReverseAnimate()

	assert.True(t, rev.IsReversed())
	assert.Equal(t, 0.8, rev.Float(Alpha).From())
	assert.Equal(t, 0.2, rev.Float(Alpha).To())

	par := src.AndReverseAnimate()
	assert.Equal(t, 0.0, par.Offset())
}

func TestFlipValuesRoundTrip(t *testing.T) {
	ch := NewChain()
	seg := ch.Animate(box("a", 0)).WithDuration(100*ms).
		AlphaTo(0.3).
		Values(Rotation, 0, 45, 90)
	seg.Float(ScaleX).Between(1, 2)

	seg.FlipValues().FlipValues()
	assert.Equal(t, 1.0, seg.Float(ScaleX).From())
	assert.Equal(t, 2.0, seg.Float(ScaleX).To())
	assert.Equal(t, 0.3, seg.Float(Alpha).To())
	assert.Equal(t, []float64{0, 45, 90}, seg.keyframes[Rotation].Values)
}

func TestAppend(t *testing.T) {
	first := NewChain()
	first.Animate(box("a", 0)).WithDuration(300 * ms).AlphaTo(0)
	second := NewChain()
	second.Animate(box("b", 20)).WithDuration(200 * ms).AlphaTo(0).
		ThenAnimate().RotateTo(10)

	require.NoError(t, first.Append(second, 1))
	assert.Equal(t, 3, first.Len())
	assert.Zero(t, second.Len())

	seen := map[SegmentID]bool{}
	for _, s := range first.Segments() {
		assert.False(t, seen[s.ID()], "duplicate id %d", s.ID())
		seen[s.ID()] = true
		assert.Same(t, first, s.Chain())
	}

	s := build(t, first)
	assert.Equal(t, 700*ms, s.TotalDuration())
}

func TestPrepend(t *testing.T) {
	main := NewChain()
	main.Animate(box("a", 0)).WithDuration(300 * ms).AlphaTo(0)
	intro := NewChain()
	intro.Animate(box("b", 20)).WithDuration(200 * ms).AlphaTo(0)

	require.NoError(t, main.Prepend(intro, 1))
	assert.Equal(t, []TargetID{"b"}, main.Head().TargetIDs())

	s := build(t, main)
	assert.Equal(t, 500*ms, s.TotalDuration())
	assert.Equal(t, []window{{0, 0.4}, {0.4, 1}}, windows(s))
}

func TestJoinErrors(t *testing.T) {
	ch := NewChain()
	ch.Animate(box("a", 0))

	assert.Error(t, ch.Append(ch, 1))
	assert.Error(t, ch.Prepend(nil, 1))
	assert.ErrorIs(t, ch.Append(NewChain(), -1), choreoerrors.ErrInvalidOffset)
}

func TestRemove(t *testing.T) {
	ch := NewChain()
	a := ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0)
	b := a.ThenAnimate().AlphaTo(1)
	c := b.ThenAnimate().AlphaTo(0)

	require.NoError(t, b.Remove())
	assert.Equal(t, 2, ch.Len())
	assert.Same(t, a, c.Parent())
	require.NoError(t, b.Remove())
}

func TestClone(t *testing.T) {
	ch := NewChain()
	seg := ch.Animate(box("a", 0)).WithDuration(100 * ms).AlphaTo(0)
	cp := seg.Clone(box("z", 50))

	assert.Equal(t, 1, ch.Len())
	assert.NotEqual(t, seg.ID(), cp.ID())
	assert.Equal(t, []TargetID{"z"}, cp.TargetIDs())
	assert.Equal(t, seg.Properties(), cp.Properties())
	assert.Nil(t, cp.Parent())
}

func TestNonScalarTrackFailsBuild(t *testing.T) {
	ch := NewChain()
	seg := ch.Animate(box("a", 0)).WithDuration(100 * ms)
	assert.NotPanics(t, func() {
		seg.Float(Color).SetTo(1)
		seg.Values(Margins, 1, 2)
	})
	assert.Nil(t, seg.tracks[Color])
	assert.Nil(t, seg.keyframes[Margins])

	_, err := ch.Build()
	assert.ErrorIs(t, err, choreoerrors.ErrInvalidProperty)
	var pe *choreoerrors.InvalidPropertyError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Float", pe.Op)
	assert.Equal(t, "color", pe.Property)
}

func TestSharedIDAllocator(t *testing.T) {
	ids := NewIDAllocator()
	one := NewChain(WithIDs(ids))
	two := NewChain(WithIDs(ids))
	a := one.Animate(box("a", 0))
	b := two.Animate(box("b", 0))
	assert.NotEqual(t, a.ID(), b.ID())
}
