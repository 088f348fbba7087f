package config_test

import (
	"strings"
	"testing"

	"github.com/spf13/viper"

	"wallshift"
	"wallshift/internal/config"
	"wallshift/internal/types"
)

func loadFrom(t *testing.T, toml string) *config.Config {
	t.Helper()
	viper.Reset()
	config.SetDefaults()
	viper.SetConfigType("toml")
	if err := viper.ReadConfig(strings.NewReader(toml)); err != nil {
		t.Fatalf("read config: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadFrom(t, "")

	if cfg.General.Backend != "hyprpaper" {
		t.Errorf("default backend = %q", cfg.General.Backend)
	}
	if cfg.General.CacheMaxMB != 500 {
		t.Errorf("default cache_max_mb = %d", cfg.General.CacheMaxMB)
	}
	if cfg.Mode() != types.ModeRandom {
		t.Errorf("default mode = %q", cfg.Mode())
	}
	if cfg.Display.Interval != "30m" {
		t.Errorf("default interval = %q", cfg.Display.Interval)
	}
	if !cfg.Sources.Wallhaven.Enabled {
		t.Error("wallhaven should be enabled by default")
	}
}

func TestFullFile(t *testing.T) {
	cfg := loadFrom(t, `
[general]
backend = "swww"
cache_max_mb = 100

[display]
mode = "schedule"
interval = "15m"

[display.transition]
type = "wipe"
duration = 1.5
fps = 30

[filter]
min_width = 2560
min_height = 1440
exclude_tags = ["anime", "cars"]

[sources.pexels]
enabled = true
api_key = "k"

[[workspaces]]
workspace = 1
wallpaper = "forest"

[[workspaces]]
workspace = 2
wallpaper = "abc-123"

[[schedules]]
time = "08:00"
tags = ["bright"]

[[schedules]]
time = "20:00"
tags = ["dark", "night"]
`)

	if cfg.General.Backend != "swww" {
		t.Errorf("backend = %q", cfg.General.Backend)
	}
	if cfg.Mode() != types.ModeSchedule {
		t.Errorf("mode = %q", cfg.Mode())
	}
	if cfg.Display.Transition.Type != "wipe" || cfg.Display.Transition.FPS != 30 {
		t.Errorf("transition = %+v", cfg.Display.Transition)
	}
	if len(cfg.Filter.ExcludeTags) != 2 {
		t.Errorf("exclude_tags = %v", cfg.Filter.ExcludeTags)
	}
	if !cfg.Sources.Pexels.Enabled || cfg.Sources.Pexels.APIKey != "k" {
		t.Errorf("pexels = %+v", cfg.Sources.Pexels)
	}
	if len(cfg.Schedules) != 2 || cfg.Schedules[1].Time != "20:00" {
		t.Errorf("schedules = %+v", cfg.Schedules)
	}

	if wp, ok := cfg.WorkspaceWallpaper(2); !ok || wp != "abc-123" {
		t.Errorf("WorkspaceWallpaper(2) = %q, %v", wp, ok)
	}
	if _, ok := cfg.WorkspaceWallpaper(9); ok {
		t.Error("WorkspaceWallpaper(9) should not match")
	}
}

func TestInvalidModeRejected(t *testing.T) {
	viper.Reset()
	config.SetDefaults()
	viper.SetConfigType("toml")
	if err := viper.ReadConfig(strings.NewReader("[display]\nmode = \"shuffle\"\n")); err != nil {
		t.Fatalf("read config: %v", err)
	}
	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown display mode")
	}
}

func TestEmbeddedDefaultConfigParses(t *testing.T) {
	cfg := loadFrom(t, wallshift.DefaultConfig)
	if _, err := types.ParseDisplayMode(cfg.Display.Mode); err != nil {
		t.Errorf("embedded config has invalid mode: %v", err)
	}
	if cfg.General.Backend == "" {
		t.Error("embedded config missing backend")
	}
}
