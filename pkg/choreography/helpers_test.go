package choreography

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/graphics"
)

const ms = time.Millisecond

func box(id string, left float64) *Target {
	return NewTarget(TargetID(id), graphics.RectFromLTWH(left, 0, 10, 10), AllCapabilities)
}

func build(t *testing.T, c *Chain) *Schedule {
	t.Helper()
	s, err := c.Build()
	require.NoError(t, err)
	return s
}

func evaluate(t *testing.T, s *Schedule, f float64) Frame {
	t.Helper()
	frame, err := s.Evaluate(f)
	require.NoError(t, err)
	return frame
}

// value returns the last sample of p for target id, and whether one exists.
func value(frame Frame, id TargetID, p Property) (any, bool) {
	var (
		v     any
		found bool
	)
	for _, s := range frame.Samples {
		if s.Target == id && s.Property == p {
			v, found = s.Value, true
		}
	}
	return v, found
}

func scalarAt(t *testing.T, frame Frame, id TargetID, p Property) float64 {
	t.Helper()
	v, ok := value(frame, id, p)
	require.Truef(t, ok, "no %v sample for %s", p, id)
	f, ok := v.(float64)
	require.Truef(t, ok, "%v sample is %T", p, v)
	return f
}

type window struct{ Start, End float64 }

func windows(s *Schedule) []window {
	var out []window
	for _, c := range s.Controls() {
		out = append(out, window{c.OffsetStart(), c.OffsetEnd()})
	}
	return out
}

func events(frame Frame) []string {
	var out []string
	for _, e := range frame.Events {
		out = append(out, fmt.Sprintf("%s:%d", e.Kind, e.Segment))
	}
	return out
}
