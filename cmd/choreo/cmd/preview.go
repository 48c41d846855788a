package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/go-drift/choreo/cmd/choreo/internal/preview"
)

func init() {
	RegisterCommand(&Command{
		Name:  "preview",
		Short: "Stream a looping document over websocket",
		Long: `Play a document in a loop and stream every frame as JSON to
clients connected to ws://ADDR/ws. GET /health reports frame and client
counts.

Flags:
  --addr ADDR  Listen address (default from CHOREO_ADDR or choreo.yaml)
  --fps N      Frames per second (default from CHOREO_FPS or choreo.yaml)`,
		Usage: "choreo preview <document> [--addr ADDR] [--fps N]",
		Run:   runPreview,
	})
}

func runPreview(args []string) error {
	s, rest, err := scheduleFromArgs(args, "choreo preview <document> [--addr ADDR] [--fps N]")
	if err != nil {
		return err
	}
	addr, fps := resolved.Addr, resolved.FPS
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "--addr":
			if i+1 >= len(rest) {
				return fmt.Errorf("--addr requires a value")
			}
			addr = rest[i+1]
			i++
		case "--fps":
			if i+1 >= len(rest) {
				return fmt.Errorf("--fps requires a value")
			}
			fps, err = strconv.Atoi(rest[i+1])
			if err != nil || fps <= 0 {
				return fmt.Errorf("invalid --fps %q", rest[i+1])
			}
			i++
		default:
			return fmt.Errorf("unknown flag %q", rest[i])
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := preview.New(s, fps, logger)
	if err := srv.Run(ctx, addr); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
