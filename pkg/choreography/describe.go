package choreography

import (
	"fmt"
	"strings"
	"time"
)

// WindowInfo is the resolved timing of one segment, for diagnostics and
// snapshots.
type WindowInfo struct {
	Segment     SegmentID     `yaml:"segment" json:"segment"`
	Targets     []TargetID    `yaml:"targets" json:"targets"`
	Properties  []string      `yaml:"properties,omitempty" json:"properties,omitempty"`
	StartDelay  time.Duration `yaml:"startDelay" json:"startDelay"`
	LocalDelay  time.Duration `yaml:"localDelay" json:"localDelay"`
	Duration    time.Duration `yaml:"duration" json:"duration"`
	OffsetStart float64       `yaml:"offsetStart" json:"offsetStart"`
	OffsetEnd   float64       `yaml:"offsetEnd" json:"offsetEnd"`
	Reversed    bool          `yaml:"reversed,omitempty" json:"reversed,omitempty"`
}

// Describe lists the window of every segment from head to tail.
func (s *Schedule) Describe() []WindowInfo {
	out := make([]WindowInfo, len(s.controls))
	for i, c := range s.controls {
		var props []string
		for _, p := range c.segment.Properties() {
			props = append(props, p.String())
		}
		out[i] = WindowInfo{
			Segment:     c.id,
			Targets:     targetIDs(c.targets),
			Properties:  props,
			StartDelay:  c.startDelay,
			LocalDelay:  c.localDelay,
			Duration:    c.duration,
			OffsetStart: c.offsetStart,
			OffsetEnd:   c.offsetEnd,
			Reversed:    c.fromFraction > c.toFraction,
		}
	}
	return out
}

// String renders the schedule as a table, one segment per line.
func (s *Schedule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "total %v, span %v\n", s.total, s.Span())
	for _, w := range s.Describe() {
		dir := ""
		if w.Reversed {
			dir = " reversed"
		}
		fmt.Fprintf(&b, "#%-3d [%.4f, %.4f] start=%v dur=%v targets=%v%s\n",
			w.Segment, w.OffsetStart, w.OffsetEnd, w.StartDelay, w.Duration, w.Targets, dir)
	}
	return b.String()
}
