package cmd

import (
	"fmt"

	"github.com/go-drift/choreo/pkg/presets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preset",
		Short: "Save, load or list stored documents",
		Long: `Manage documents kept in the per-user preset store.

Subcommands:
  save <name> <document>  Validate a document and store it under name
  load <name>             Print a stored document as YAML
  list                    List stored preset names

The store is named by CHOREO_PRESET_APP or presets.app in choreo.yaml.`,
		Usage: "choreo preset <save|load|list> [args]",
		Run:   runPreset,
	})
}

var openPresets = presets.Open

func runPreset(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand is required (save, load or list)\n\nUsage: choreo preset <save|load|list>")
	}
	store, err := openPresets(resolved.PresetApp)
	if err != nil {
		return err
	}

	switch args[0] {
	case "save":
		if len(args) != 3 {
			return fmt.Errorf("usage: choreo preset save <name> <document>")
		}
		doc, err := loadDocument(args[2])
		if err != nil {
			return err
		}
		if _, err := buildSchedule(doc); err != nil {
			return err
		}
		if err := store.Save(args[1], doc); err != nil {
			return err
		}
		logger.Info().Str("preset", args[1]).Str("app", resolved.PresetApp).Msg("preset saved")
		return nil
	case "load":
		if len(args) != 2 {
			return fmt.Errorf("usage: choreo preset load <name>")
		}
		doc, err := store.Load(args[1])
		if err != nil {
			return err
		}
		data, err := doc.Marshal()
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	case "list":
		for _, name := range store.List() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown preset subcommand %q (use save, load or list)", args[0])
	}
}
