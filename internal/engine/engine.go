// Package engine owns all mutable daemon state. A single goroutine runs the
// rotation state machine; everything else talks to it through the command
// channel, so no locks guard the state.
package engine

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"wallshift/internal/backend"
	"wallshift/internal/config"
	"wallshift/internal/types"
)

// Storage is the persistence surface the engine consumes.
type Storage interface {
	List(ctx context.Context) ([]types.Wallpaper, error)
	Get(ctx context.Context, id string) (*types.Wallpaper, error)
	MarkUsed(ctx context.Context, id string) error
}

const (
	commandBuffer       = 32
	defaultInterval     = 30 * time.Minute
	maintenanceInterval = time.Hour
)

// Engine is the single-owner actor behind the command channel.
type Engine struct {
	cfg         *config.Config
	store       Storage
	backend     backend.Backend
	maintenance func(context.Context)

	cmds chan Command

	// test seams; production values set in New
	reloadConfig func() (*config.Config, error)
	randIntN     func(n int) int
	now          func() time.Time

	mode         types.DisplayMode
	paused       bool
	currentIndex int
	currentID    string
	wallpapers   []types.Wallpaper
	interval     time.Duration
	deadline     time.Time
}

// New builds an engine in the configured display mode. maintenance, if
// non-nil, runs once at startup and then on a fixed period; its failures must
// never block rotation, so it takes care of its own logging.
func New(cfg *config.Config, st Storage, b backend.Backend, maintenance func(context.Context)) *Engine {
	return &Engine{
		cfg:          cfg,
		store:        st,
		backend:      b,
		maintenance:  maintenance,
		cmds:         make(chan Command, commandBuffer),
		reloadConfig: config.Reload,
		randIntN:     rand.IntN,
		now:          time.Now,
		mode:         cfg.Mode(),
		interval:     defaultInterval,
	}
}

// Commands is the write side of the command channel.
func (e *Engine) Commands() chan<- Command {
	return e.cmds
}

// Run executes the state machine until a quit command arrives or the context
// is canceled. It must be the only goroutine touching the engine's state.
func (e *Engine) Run(ctx context.Context) {
	e.reloadWallpapers(ctx)
	if e.maintenance != nil {
		e.maintenance(ctx)
	}

	if d, err := ParseInterval(e.cfg.Display.Interval); err == nil && d > 0 {
		e.interval = d
	} else {
		log.Warn("invalid rotation interval, using default",
			"interval", e.cfg.Display.Interval, "default", defaultInterval)
	}

	if e.mode == types.ModeRandomStartup && len(e.wallpapers) > 0 {
		e.currentIndex = e.randIntN(len(e.wallpapers))
		e.applyCurrent(ctx)
	}

	timer := time.NewTimer(e.interval)
	defer timer.Stop()
	e.deadline = e.now().Add(e.interval)

	maint := time.NewTicker(maintenanceInterval)
	defer maint.Stop()

	log.Info("rotation engine started",
		"mode", e.mode, "wallpapers", len(e.wallpapers), "interval", e.interval)

	for {
		select {
		case <-timer.C:
			e.handleTick(ctx)
			e.resetTimer(timer)
		case <-maint.C:
			if e.maintenance != nil {
				e.maintenance(ctx)
			}
		case cmd := <-e.cmds:
			if e.handleCommand(ctx, cmd, timer) {
				log.Info("rotation engine stopped")
				return
			}
		case <-ctx.Done():
			log.Info("shutdown signal received, stopping engine")
			return
		}
	}
}

func (e *Engine) resetTimer(timer *time.Timer) {
	timer.Reset(e.interval)
	e.deadline = e.now().Add(e.interval)
}

// handleTick is the rotation timer firing. Paused engines ignore it.
func (e *Engine) handleTick(ctx context.Context) {
	if e.paused {
		return
	}
	switch e.mode {
	case types.ModeRandom, types.ModeSequential:
		e.next(ctx)
	case types.ModeSchedule:
		e.handleSchedule(ctx)
	}
}

// handleCommand applies one command and reports whether the engine should quit.
func (e *Engine) handleCommand(ctx context.Context, cmd Command, timer *time.Timer) bool {
	switch c := cmd.(type) {
	case StatusCmd:
		c.Reply <- e.status()
	case NextCmd:
		e.next(ctx)
		e.resetTimer(timer)
	case PrevCmd:
		e.prev(ctx)
		e.resetTimer(timer)
	case SetWallpaperCmd:
		c.Reply <- e.setWallpaper(ctx, c.ID)
	case SetModeCmd:
		log.Info("display mode changed", "mode", c.Mode)
		e.mode = c.Mode
	case PauseCmd:
		e.paused = true
		log.Info("rotation paused")
	case ResumeCmd:
		e.paused = false
		e.resetTimer(timer)
		log.Info("rotation resumed")
	case ReloadCmd:
		e.reload(ctx)
	case WorkspaceChangedCmd:
		e.handleWorkspaceChange(ctx, c.ID)
	case QuitCmd:
		log.Info("quit command received")
		return true
	}
	return false
}

// next advances the rotation position. Manual invocations work even while
// paused; modes without a rotation order ignore it.
func (e *Engine) next(ctx context.Context) {
	if len(e.wallpapers) == 0 {
		return
	}
	switch e.mode {
	case types.ModeRandom:
		e.currentIndex = e.randIntN(len(e.wallpapers))
	case types.ModeSequential:
		e.currentIndex = (e.currentIndex + 1) % len(e.wallpapers)
	default:
		return
	}
	e.applyCurrent(ctx)
}

// prev steps back one position, wrapping to the end at index 0.
func (e *Engine) prev(ctx context.Context) {
	if len(e.wallpapers) == 0 {
		return
	}
	if e.currentIndex == 0 {
		e.currentIndex = len(e.wallpapers) - 1
	} else {
		e.currentIndex--
	}
	e.applyCurrent(ctx)
}

func (e *Engine) applyCurrent(ctx context.Context) {
	if len(e.wallpapers) == 0 {
		return
	}
	e.apply(ctx, &e.wallpapers[e.currentIndex])
}

// apply paints a wallpaper onto every output. Backend failures are logged
// and leave the current wallpaper unchanged.
func (e *Engine) apply(ctx context.Context, wp *types.Wallpaper) bool {
	if _, err := os.Stat(wp.FilePath); err != nil {
		log.Warn("wallpaper file missing", "id", wp.ID, "path", wp.FilePath)
		return false
	}
	if err := e.backend.SetWallpaperAll(ctx, wp.FilePath); err != nil {
		log.Warn("failed to set wallpaper", "id", wp.ID, "err", err)
		return false
	}
	e.currentID = wp.ID
	if err := e.store.MarkUsed(ctx, wp.ID); err != nil {
		log.Warn("failed to mark wallpaper used", "id", wp.ID, "err", err)
	}
	log.Info("wallpaper set", "id", wp.ID, "path", wp.FilePath)
	return true
}

// setWallpaper resolves an id against the snapshot first, then the store.
func (e *Engine) setWallpaper(ctx context.Context, id string) error {
	var target *types.Wallpaper
	for i := range e.wallpapers {
		if e.wallpapers[i].ID == id {
			target = &e.wallpapers[i]
			break
		}
	}
	if target == nil {
		wp, err := e.store.Get(ctx, id)
		if err != nil {
			return err
		}
		target = wp
	}

	if err := e.backend.SetWallpaperAll(ctx, target.FilePath); err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}
	e.currentID = target.ID
	if err := e.store.MarkUsed(ctx, target.ID); err != nil {
		log.Warn("failed to mark wallpaper used", "id", target.ID, "err", err)
	}
	log.Info("wallpaper set", "id", target.ID, "path", target.FilePath)
	return nil
}

// handleWorkspaceChange applies the wallpaper bound to a workspace number.
// The mapping value matches a wallpaper id first, then a tag.
func (e *Engine) handleWorkspaceChange(ctx context.Context, workspace int) {
	if e.mode != types.ModeWorkspace {
		return
	}
	key, ok := e.cfg.WorkspaceWallpaper(workspace)
	if !ok {
		return
	}
	for i := range e.wallpapers {
		wp := &e.wallpapers[i]
		if wp.ID == key || wp.HasTag(key) {
			if e.apply(ctx, wp) {
				log.Info("workspace wallpaper set", "workspace", workspace, "id", wp.ID)
			}
			return
		}
	}
	log.Warn("no wallpaper found for workspace", "workspace", workspace, "key", key)
}

// handleSchedule picks uniformly among wallpapers tagged for the active
// schedule slot.
func (e *Engine) handleSchedule(ctx context.Context) {
	_, tags, ok := NextScheduleTrigger(e.cfg.Schedules, e.now())
	if !ok {
		return
	}

	var matching []int
	for i := range e.wallpapers {
		for _, tag := range tags {
			if e.wallpapers[i].HasTag(tag) {
				matching = append(matching, i)
				break
			}
		}
	}
	if len(matching) == 0 {
		return
	}

	e.currentIndex = matching[e.randIntN(len(matching))]
	e.applyCurrent(ctx)
}

// reload re-reads config and replaces the wallpaper snapshot wholesale. The
// previous config and snapshot stay in place on failure.
func (e *Engine) reload(ctx context.Context) {
	cfg, err := e.reloadConfig()
	if err != nil {
		log.Warn("config reload failed, keeping previous config", "err", err)
	} else {
		e.cfg = cfg
		if d, perr := ParseInterval(cfg.Display.Interval); perr == nil && d > 0 {
			e.interval = d
		}
	}
	e.reloadWallpapers(ctx)
	log.Info("config reloaded", "wallpapers", len(e.wallpapers))
}

func (e *Engine) reloadWallpapers(ctx context.Context) {
	wps, err := e.store.List(ctx)
	if err != nil {
		log.Warn("failed to load wallpapers, keeping previous snapshot", "err", err)
		return
	}
	e.wallpapers = wps
	if e.currentIndex >= len(wps) {
		e.currentIndex = 0
	}
	log.Info("loaded wallpaper snapshot", "count", len(wps))
}

func (e *Engine) status() Status {
	st := Status{
		Running:          true,
		Mode:             e.mode,
		Paused:           e.paused,
		CurrentWallpaper: e.currentID,
		WallpaperCount:   len(e.wallpapers),
	}
	if !e.paused && e.mode.Rotates() {
		remaining := e.deadline.Sub(e.now())
		if remaining < 0 {
			remaining = 0
		}
		st.NextChange = fmt.Sprintf("%ds", int(remaining.Seconds()))
	}
	return st
}
