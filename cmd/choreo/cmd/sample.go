package cmd

import (
	"fmt"
	"strconv"

	"github.com/go-drift/choreo/pkg/choreography"
)

func init() {
	RegisterCommand(&Command{
		Name:  "sample",
		Short: "Print property values along the timeline",
		Long: `Evaluate a document at evenly spaced global fractions and print
every sampled value and every event crossed.

Flags:
  --steps N   Number of intervals; N+1 fractions are evaluated (default from
              choreo.yaml, otherwise 10)`,
		Usage: "choreo sample <document> [--steps N]",
		Run:   runSample,
	})
}

func runSample(args []string) error {
	s, rest, err := scheduleFromArgs(args, "choreo sample <document> [--steps N]")
	if err != nil {
		return err
	}
	steps := resolved.Steps
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--steps":
			if i+1 >= len(rest) {
				return fmt.Errorf("--steps requires a value")
			}
			steps, err = strconv.Atoi(rest[i+1])
			if err != nil || steps <= 0 {
				return fmt.Errorf("invalid --steps %q", rest[i+1])
			}
			i++
		default:
			return fmt.Errorf("unknown flag %q", rest[i])
		}
	}

	for i := 0; i <= steps; i++ {
		f := float64(i) / float64(steps)
		frame, err := s.Evaluate(f)
		if err != nil {
			return err
		}
		printFrame(frame)
	}
	return nil
}

func printFrame(frame choreography.Frame) {
	fmt.Fprintf(stdout, "f=%.4f\n", frame.Fraction)
	for _, ev := range frame.Events {
		if ev.Kind == choreography.EventTrigger {
			fmt.Fprintf(stdout, "  ! %d %s #%d\n", ev.Segment, ev.Kind, ev.Trigger)
			continue
		}
		fmt.Fprintf(stdout, "  ! %d %s\n", ev.Segment, ev.Kind)
	}
	for _, smp := range frame.Samples {
		fmt.Fprintf(stdout, "  %s.%s = %s\n", smp.Target, smp.Property, formatValue(smp.Value))
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', 4, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
