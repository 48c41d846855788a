package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/choreo/pkg/presets"
)

// execute runs the CLI with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"CHOREO_ADDR", "CHOREO_FPS", "CHOREO_LOG_LEVEL", "CHOREO_PRESET_APP"} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })
	err := run(args)
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "choreo version "+Version)
}

func TestHelpListsCommands(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	for _, name := range []string{"schedule", "sample", "preview", "preset"} {
		assert.Contains(t, out, name)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "bogus")
	assert.EqualError(t, err, "unknown command: bogus")
}

func TestSchedule(t *testing.T) {
	out, err := execute(t, "schedule", "testdata/fade.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "total 200ms, span 200ms")
	assert.Contains(t, out, "#1   [0.0000, 0.5000]")
	assert.Contains(t, out, "#2   [0.5000, 1.0000]")
}

func TestScheduleJSON(t *testing.T) {
	out, err := execute(t, "schedule", "testdata/fade.yaml", "--format", "json")
	require.NoError(t, err)
	var windows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &windows))
	require.Len(t, windows, 2)
	assert.Equal(t, 0.5, windows[1]["offsetStart"])
}

func TestScheduleErrors(t *testing.T) {
	_, err := execute(t, "schedule")
	assert.ErrorContains(t, err, "document is required")

	_, err = execute(t, "schedule", "testdata/missing.yaml")
	assert.Error(t, err)

	_, err = execute(t, "schedule", "testdata/fade.yaml", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSample(t *testing.T) {
	out, err := execute(t, "sample", "testdata/fade.yaml", "--steps", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "f=0.2500\n  box.alpha = 0.5000\n")
	assert.Contains(t, out, "f=0.5000\n  ! 1 end\n  ! 2 start\n")
	assert.Contains(t, out, "f=1.0000\n  ! 2 end\n")
}

func TestSampleInvalidSteps(t *testing.T) {
	_, err := execute(t, "sample", "testdata/fade.yaml", "--steps", "0")
	assert.ErrorContains(t, err, "invalid --steps")
}

func TestPreset(t *testing.T) {
	store, err := presets.New(nil)
	require.NoError(t, err)
	prev := openPresets
	openPresets = func(string) (*presets.Store, error) { return store, nil }
	t.Cleanup(func() { openPresets = prev })

	_, err = execute(t, "preset", "save", "fade", "testdata/fade.yaml")
	require.NoError(t, err)

	out, err := execute(t, "preset", "list")
	require.NoError(t, err)
	assert.Equal(t, "fade\n", out)

	out, err = execute(t, "preset", "load", "fade")
	require.NoError(t, err)
	assert.Contains(t, out, "name: fade")

	_, err = execute(t, "preset", "load", "other")
	assert.ErrorIs(t, err, presets.ErrNotFound)
}
