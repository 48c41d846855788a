package motiontest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/choreo/pkg/choreography"
	"github.com/go-drift/choreo/pkg/graphics"
)

// UpdateEnv is the environment variable that makes MatchesFile rewrite
// golden files instead of comparing against them.
const UpdateEnv = "CHOREO_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures a schedule's timing and the values it produces at a set
// of fractions.
type Snapshot struct {
	Total   time.Duration             `json:"total"`
	Span    time.Duration             `json:"span"`
	Windows []choreography.WindowInfo `json:"windows"`
	Frames  []FrameSnapshot           `json:"frames,omitempty"`
}

// FrameSnapshot is one evaluated fraction with values rendered as text.
type FrameSnapshot struct {
	Fraction float64           `json:"fraction"`
	Values   map[string]string `json:"values,omitempty"`
	Events   []string          `json:"events,omitempty"`
}

// Capture evaluates s at each fraction in order and then resets it. Segment
// callbacks run as they would during playback.
func Capture(s *choreography.Schedule, fractions ...float64) (*Snapshot, error) {
	snap := &Snapshot{
		Total:   s.TotalDuration(),
		Span:    s.Span(),
		Windows: s.Describe(),
	}
	for _, f := range fractions {
		frame, err := s.Evaluate(f)
		if err != nil {
			return nil, err
		}
		fs := FrameSnapshot{Fraction: round4(frame.Fraction)}
		for _, sample := range frame.Samples {
			if fs.Values == nil {
				fs.Values = make(map[string]string)
			}
			fs.Values[string(sample.Target)+"."+sample.Property.String()] = formatValue(sample.Value)
		}
		for _, e := range frame.Events {
			fs.Events = append(fs.Events, formatEvent(e))
		}
		snap.Frames = append(snap.Frames, fs)
	}
	if _, err := s.Reset(); err != nil {
		return nil, err
	}
	return snap, nil
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When CHOREO_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := LoadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got)\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns the differences from want to s, or "" when they are equal.
func (s *Snapshot) Diff(want *Snapshot) string {
	return cmp.Diff(want, s)
}

// Marshal encodes the snapshot as indented JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadSnapshot reads a snapshot written by UpdateFile.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(round4(x), 'f', -1, 64)
	case graphics.Color:
		return x.String()
	case graphics.CornerRadii:
		return fmt.Sprint(x)
	case graphics.Insets:
		return fmt.Sprint(x.Components())
	default:
		return fmt.Sprint(v)
	}
}

func formatEvent(e choreography.Event) string {
	if e.Kind == choreography.EventTrigger {
		return fmt.Sprintf("%d:%s#%d", e.Segment, e.Kind, e.Trigger)
	}
	return fmt.Sprintf("%d:%s", e.Segment, e.Kind)
}

func round4(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 4, 64), 64)
	return r
}
