// Package backend abstracts the compositor-specific tools that actually
// paint a wallpaper onto an output.
package backend

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"wallshift/internal/config"
)

// Backend applies a wallpaper image to one or all outputs. Implementations
// shell out to compositor tooling; failures are reported, never fatal.
type Backend interface {
	SetWallpaper(ctx context.Context, path, monitor string) error
	SetWallpaperAll(ctx context.Context, path string) error
	Name() string
}

// New selects the backend named in config. The set is closed: hyprpaper
// or swww.
func New(cfg *config.Config) (Backend, error) {
	switch cfg.General.Backend {
	case "hyprpaper":
		return NewHyprpaper(), nil
	case "swww":
		return NewSwww(cfg.Display.Transition), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", cfg.General.Backend)
	}
}

// runnerFunc executes an external tool. Swapped out in tests.
type runnerFunc func(ctx context.Context, name string, args ...string) error

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w: %s", name, err, bytes.TrimSpace(out))
	}
	return nil
}
