package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-drift/choreo/cmd/choreo/internal/config"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger()

var resolved *config.Resolved

func loadConfig() (*config.Resolved, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(dir); err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	resolved = cfg
	return cfg, nil
}

// setupLogging sets the level of the CLI logger and routes playback errors
// through it.
func setupLogging(level string, verbose bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	logger = logger.Level(lvl)
	choreoerrors.SetHandler(&choreoerrors.LogHandler{Logger: logger, Verbose: verbose})
	return nil
}
