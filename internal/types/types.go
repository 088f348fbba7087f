package types

import "fmt"

// DisplayMode is the rotation policy the daemon is currently running.
type DisplayMode string

const (
	ModeStatic        DisplayMode = "static"
	ModeRandom        DisplayMode = "random"
	ModeRandomStartup DisplayMode = "random_startup"
	ModeSequential    DisplayMode = "sequential"
	ModeWorkspace     DisplayMode = "workspace"
	ModeSchedule      DisplayMode = "schedule"
)

// AllModes lists every valid display mode, in display order.
var AllModes = []DisplayMode{
	ModeStatic,
	ModeRandom,
	ModeRandomStartup,
	ModeSequential,
	ModeWorkspace,
	ModeSchedule,
}

// ParseDisplayMode validates a mode name from config or the control protocol.
func ParseDisplayMode(s string) (DisplayMode, error) {
	for _, m := range AllModes {
		if s == string(m) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown display mode: %q", s)
}

// Rotates reports whether the mode advances wallpapers on the rotation timer.
func (m DisplayMode) Rotates() bool {
	return m == ModeRandom || m == ModeSequential
}

// SourceType identifies where a wallpaper came from.
type SourceType string

const (
	SourceWallhaven SourceType = "wallhaven"
	SourceUnsplash  SourceType = "unsplash"
	SourcePexels    SourceType = "pexels"
	SourceLocal     SourceType = "local"
)

// Wallpaper is a single record in the wallpaper library.
type Wallpaper struct {
	ID         string     `json:"id"`
	SourceType SourceType `json:"source_type"`
	SourceID   string     `json:"source_id"`
	SourceURL  string     `json:"source_url,omitempty"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Tags       []string   `json:"tags"`
	FilePath   string     `json:"file_path"`
	AddedAt    string     `json:"added_at"`
	LastUsed   string     `json:"last_used,omitempty"`
	UseCount   int        `json:"use_count"`
}

// HasTag reports whether the wallpaper carries the given tag.
func (w *Wallpaper) HasTag(tag string) bool {
	for _, t := range w.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
