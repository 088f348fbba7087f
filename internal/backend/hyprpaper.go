package backend

import "context"

// Hyprpaper drives the hyprpaper daemon through hyprctl.
type Hyprpaper struct {
	run runnerFunc
}

func NewHyprpaper() *Hyprpaper {
	return &Hyprpaper{run: runCommand}
}

func (h *Hyprpaper) Name() string { return "hyprpaper" }

func (h *Hyprpaper) SetWallpaper(ctx context.Context, path, monitor string) error {
	return h.apply(ctx, path, monitor)
}

func (h *Hyprpaper) SetWallpaperAll(ctx context.Context, path string) error {
	return h.apply(ctx, path, "")
}

// apply preloads the image, binds it to the monitor (empty monitor means all
// outputs), then unloads unused images so hyprpaper releases their memory.
func (h *Hyprpaper) apply(ctx context.Context, path, monitor string) error {
	if err := h.run(ctx, "hyprctl", "hyprpaper", "preload", path); err != nil {
		return err
	}
	if err := h.run(ctx, "hyprctl", "hyprpaper", "wallpaper", monitor+","+path); err != nil {
		return err
	}
	return h.run(ctx, "hyprctl", "hyprpaper", "unload", "all")
}
