package backend

import (
	"context"
	"strconv"

	"wallshift/internal/config"
)

// Swww drives the swww wayland wallpaper daemon.
type Swww struct {
	transition config.TransitionConfig
	run        runnerFunc
}

func NewSwww(transition config.TransitionConfig) *Swww {
	return &Swww{transition: transition, run: runCommand}
}

func (s *Swww) Name() string { return "swww" }

func (s *Swww) SetWallpaper(ctx context.Context, path, monitor string) error {
	return s.run(ctx, "swww", s.args(path, monitor)...)
}

func (s *Swww) SetWallpaperAll(ctx context.Context, path string) error {
	return s.run(ctx, "swww", s.args(path, "")...)
}

func (s *Swww) args(path, monitor string) []string {
	args := []string{
		"img", path,
		"--transition-type", s.transition.Type,
		"--transition-duration", strconv.FormatFloat(s.transition.Duration, 'f', -1, 64),
		"--transition-fps", strconv.Itoa(s.transition.FPS),
	}
	if monitor != "" {
		args = append(args, "--outputs", monitor)
	}
	return args
}
