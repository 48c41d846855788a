package cmd

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

func init() {
	RegisterCommand(&Command{
		Name:  "schedule",
		Short: "Print the timing of every segment",
		Long: `Build a document and print the window of every segment on the
global timeline, in chain order.

Flags:
  --format FORMAT  Output format: text (default), yaml or json`,
		Usage: "choreo schedule <document> [--format text|yaml|json]",
		Run:   runSchedule,
	})
}

func runSchedule(args []string) error {
	s, rest, err := scheduleFromArgs(args, "choreo schedule <document>")
	if err != nil {
		return err
	}
	format := "text"
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--format":
			if i+1 >= len(rest) {
				return fmt.Errorf("--format requires a value")
			}
			format = rest[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag %q", rest[i])
		}
	}

	switch format {
	case "text":
		fmt.Fprint(stdout, s.String())
		return nil
	case "yaml":
		enc := yaml.NewEncoder(stdout)
		enc.SetIndent(2)
		if err := enc.Encode(s.Describe()); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Describe())
	default:
		return fmt.Errorf("unknown format %q (use text, yaml or json)", format)
	}
}
