// Package config maps the viper-backed TOML configuration into typed
// sections the daemon consumes.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"wallshift/internal/types"
)

type Config struct {
	General    GeneralConfig      `mapstructure:"general"`
	Display    DisplayConfig      `mapstructure:"display"`
	Filter     FilterConfig       `mapstructure:"filter"`
	Sources    SourcesConfig      `mapstructure:"sources"`
	Workspaces []WorkspaceMapping `mapstructure:"workspaces"`
	Schedules  []ScheduleEntry    `mapstructure:"schedules"`
}

type GeneralConfig struct {
	Backend    string `mapstructure:"backend"`
	CacheMaxMB int64  `mapstructure:"cache_max_mb"`
}

type DisplayConfig struct {
	Mode       string           `mapstructure:"mode"`
	Interval   string           `mapstructure:"interval"`
	Transition TransitionConfig `mapstructure:"transition"`
}

// TransitionConfig is passed through to swww; hyprpaper ignores it.
type TransitionConfig struct {
	Type     string  `mapstructure:"type"`
	Duration float64 `mapstructure:"duration"`
	FPS      int     `mapstructure:"fps"`
}

type FilterConfig struct {
	MinWidth    int      `mapstructure:"min_width"`
	MinHeight   int      `mapstructure:"min_height"`
	ExcludeTags []string `mapstructure:"exclude_tags"`
}

type SourcesConfig struct {
	Wallhaven WallhavenConfig `mapstructure:"wallhaven"`
	Unsplash  UnsplashConfig  `mapstructure:"unsplash"`
	Pexels    PexelsConfig    `mapstructure:"pexels"`
}

type WallhavenConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	APIKey     string `mapstructure:"api_key"`
	Categories string `mapstructure:"categories"`
	Purity     string `mapstructure:"purity"`
}

type UnsplashConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	AccessKey string `mapstructure:"access_key"`
}

type PexelsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
}

// WorkspaceMapping binds a workspace number to a wallpaper id or tag.
// Consulted only in workspace mode.
type WorkspaceMapping struct {
	Workspace int    `mapstructure:"workspace"`
	Wallpaper string `mapstructure:"wallpaper"`
}

// ScheduleEntry is a time-of-day slot ("HH:MM") with the tags that should be
// on screen from that point.
type ScheduleEntry struct {
	Time string   `mapstructure:"time"`
	Tags []string `mapstructure:"tags"`
}

// SetDefaults registers every config default with viper. Called once from
// the CLI before the config file is read.
func SetDefaults() {
	viper.SetDefault("general.backend", "hyprpaper")
	viper.SetDefault("general.cache_max_mb", 500)
	viper.SetDefault("display.mode", "random")
	viper.SetDefault("display.interval", "30m")
	viper.SetDefault("display.transition.type", "fade")
	viper.SetDefault("display.transition.duration", 2.0)
	viper.SetDefault("display.transition.fps", 60)
	viper.SetDefault("filter.min_width", 1920)
	viper.SetDefault("filter.min_height", 1080)
	viper.SetDefault("sources.wallhaven.enabled", true)
	viper.SetDefault("sources.wallhaven.categories", "100")
	viper.SetDefault("sources.wallhaven.purity", "100")
	viper.SetDefault("debug", false)
}

// Load unmarshals the resolved viper settings into a Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := types.ParseDisplayMode(cfg.Display.Mode); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Reload re-reads the config file from disk and returns the fresh settings.
// The previous config stays in effect if the read fails.
func Reload() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("re-read config: %w", err)
	}
	return Load()
}

// Mode returns the configured display mode. Load has already validated it.
func (c *Config) Mode() types.DisplayMode {
	m, err := types.ParseDisplayMode(c.Display.Mode)
	if err != nil {
		return types.ModeRandom
	}
	return m
}

// WorkspaceWallpaper looks up the wallpaper key bound to a workspace number.
func (c *Config) WorkspaceWallpaper(workspace int) (string, bool) {
	for _, m := range c.Workspaces {
		if m.Workspace == workspace {
			return m.Wallpaper, true
		}
	}
	return "", false
}
