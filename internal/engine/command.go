package engine

import "wallshift/internal/types"

// Command is the closed set of messages the engine consumes. Producers push
// commands through the channel returned by Engine.Commands; the engine is the
// only consumer.
type Command interface {
	isCommand()
}

// StatusCmd requests a state snapshot. Reply is fulfilled exactly once.
type StatusCmd struct {
	Reply chan Status
}

// NextCmd advances to the next wallpaper (random or sequential mode).
type NextCmd struct{}

// PrevCmd steps back to the previous wallpaper.
type PrevCmd struct{}

// SetWallpaperCmd applies a specific wallpaper by id. Reply carries nil on
// success and is fulfilled exactly once.
type SetWallpaperCmd struct {
	ID    string
	Reply chan error
}

// SetModeCmd switches the display mode without triggering a rotation.
type SetModeCmd struct {
	Mode types.DisplayMode
}

// PauseCmd suspends automatic rotation.
type PauseCmd struct{}

// ResumeCmd resumes automatic rotation with a full interval until the next tick.
type ResumeCmd struct{}

// ReloadCmd re-reads the config and replaces the wallpaper snapshot wholesale.
type ReloadCmd struct{}

// WorkspaceChangedCmd reports a compositor workspace switch. Acted on only in
// workspace mode.
type WorkspaceChangedCmd struct {
	ID int
}

// QuitCmd terminates the engine run loop.
type QuitCmd struct{}

func (StatusCmd) isCommand()           {}
func (NextCmd) isCommand()             {}
func (PrevCmd) isCommand()             {}
func (SetWallpaperCmd) isCommand()     {}
func (SetModeCmd) isCommand()          {}
func (PauseCmd) isCommand()            {}
func (ResumeCmd) isCommand()           {}
func (ReloadCmd) isCommand()           {}
func (WorkspaceChangedCmd) isCommand() {}
func (QuitCmd) isCommand()             {}

// NewStatusCmd builds a status request with its one-shot reply slot.
func NewStatusCmd() StatusCmd {
	return StatusCmd{Reply: make(chan Status, 1)}
}

// NewSetWallpaperCmd builds a set_wallpaper request with its one-shot reply slot.
func NewSetWallpaperCmd(id string) SetWallpaperCmd {
	return SetWallpaperCmd{ID: id, Reply: make(chan error, 1)}
}

// Status is the snapshot returned for a StatusCmd.
type Status struct {
	Running          bool              `json:"running"`
	Mode             types.DisplayMode `json:"mode"`
	Paused           bool              `json:"paused"`
	CurrentWallpaper string            `json:"current_wallpaper,omitempty"`
	WallpaperCount   int               `json:"wallpaper_count"`
	NextChange       string            `json:"next_change,omitempty"`
}
