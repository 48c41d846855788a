// Package config loads the optional choreo.yaml next to the documents and
// the CHOREO_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "choreo.yaml"

// Environment overrides. They take precedence over choreo.yaml.
const (
	EnvAddr      = "CHOREO_ADDR"
	EnvLogLevel  = "CHOREO_LOG_LEVEL"
	EnvPresetApp = "CHOREO_PRESET_APP"
	EnvFPS       = "CHOREO_FPS"
)

// Config represents choreo.yaml.
type Config struct {
	Sample  SampleConfig  `yaml:"sample"`
	Preview PreviewConfig `yaml:"preview"`
	Presets PresetsConfig `yaml:"presets"`
	Log     LogConfig     `yaml:"log"`
}

// SampleConfig configures the sample command.
type SampleConfig struct {
	Steps int `yaml:"steps,omitempty"`
}

// PreviewConfig configures the preview server.
type PreviewConfig struct {
	Addr string `yaml:"addr,omitempty"`
	FPS  int    `yaml:"fps,omitempty"`
}

// PresetsConfig names the preset store.
type PresetsConfig struct {
	App string `yaml:"app,omitempty"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Steps     int
	Addr      string
	FPS       int
	PresetApp string
	LogLevel  string
}

// LoadOptional reads choreo.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// LoadEnv loads dir/.env into the process environment. Variables that are
// already set are kept. A missing file is not an error.
func LoadEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Resolve loads choreo.yaml (if present), applies environment overrides
// and fills defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Steps:     cfg.Sample.Steps,
		Addr:      strings.TrimSpace(cfg.Preview.Addr),
		FPS:       cfg.Preview.FPS,
		PresetApp: strings.TrimSpace(cfg.Presets.App),
		LogLevel:  strings.TrimSpace(cfg.Log.Level),
	}
	if v := os.Getenv(EnvAddr); v != "" {
		r.Addr = v
	}
	if v := os.Getenv(EnvPresetApp); v != "" {
		r.PresetApp = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		r.LogLevel = v
	}
	if v := os.Getenv(EnvFPS); v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvFPS, v, err)
		}
		r.FPS = fps
	}

	if r.Steps <= 0 {
		r.Steps = 10
	}
	if r.Addr == "" {
		r.Addr = "localhost:8642"
	}
	if r.FPS <= 0 {
		r.FPS = 60
	}
	if r.PresetApp == "" {
		r.PresetApp = "choreo"
	}
	if r.LogLevel == "" {
		r.LogLevel = "info"
	}
	return r, nil
}
