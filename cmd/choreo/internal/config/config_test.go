package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func clearEnv(t *testing.T) {
	for _, k := range []string{EnvAddr, EnvLogLevel, EnvPresetApp, EnvFPS} {
		t.Setenv(k, "")
	}
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)
	r, err := Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, &Resolved{
		Steps:     10,
		Addr:      "localhost:8642",
		FPS:       60,
		PresetApp: "choreo",
		LogLevel:  "info",
	}, r)
}

func TestResolveFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	write(t, dir, FileName, `
sample: {steps: 4}
preview: {addr: ":9000", fps: 30}
presets: {app: studio}
log: {level: debug}
`)
	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Steps)
	assert.Equal(t, ":9000", r.Addr)
	assert.Equal(t, 30, r.FPS)
	assert.Equal(t, "studio", r.PresetApp)
	assert.Equal(t, "debug", r.LogLevel)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	write(t, dir, FileName, "preview: {addr: \":9000\"}\n")
	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvFPS, "24")

	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, ":7000", r.Addr)
	assert.Equal(t, 24, r.FPS)
}

func TestInvalidFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, FileName, "sample: [\n")
	_, err := LoadOptional(dir)
	assert.Error(t, err)
}

func TestInvalidFPS(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFPS, "fast")
	_, err := Resolve(t.TempDir())
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvPresetApp)
	dir := t.TempDir()
	require.NoError(t, LoadEnv(dir))

	write(t, dir, ".env", EnvPresetApp+"=fromenv\n")
	require.NoError(t, LoadEnv(dir))
	assert.Equal(t, "fromenv", os.Getenv(EnvPresetApp))

	r, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", r.PresetApp)
}
