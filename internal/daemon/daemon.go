// Package daemon wires the store, backend, engine, control socket and
// workspace listener into one process lifecycle.
package daemon

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"wallshift/internal/backend"
	"wallshift/internal/cache"
	"wallshift/internal/config"
	"wallshift/internal/engine"
	"wallshift/internal/ipc"
	"wallshift/internal/paths"
	"wallshift/internal/store"
	"wallshift/internal/workspace"
)

// Daemon owns the process-wide resources of a running wallshift instance.
type Daemon struct {
	cfg   *config.Config
	paths *paths.Paths
	lock  *flock.Flock
	store *store.Store
}

func New(cfg *config.Config) (*Daemon, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}
	if err := p.EnsureDirs(); err != nil {
		return nil, err
	}
	return &Daemon{
		cfg:   cfg,
		paths: p,
		lock:  flock.New(p.LockFile()),
	}, nil
}

// Run blocks until the engine quits or the process receives SIGINT/SIGTERM.
func (d *Daemon) Run(ctx context.Context) error {
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another wallshift instance is already running (lock %s)", d.lock.Path())
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			log.Warn("failed to release daemon lock", "err", err)
		}
	}()

	st, err := store.Open(d.paths.DBPath())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	d.store = st
	defer st.Close()

	b, err := backend.New(d.cfg)
	if err != nil {
		return err
	}
	log.Info("starting wallshift",
		"backend", b.Name(),
		"mode", d.cfg.Display.Mode,
		"socket", paths.SocketPath())

	eng := engine.New(d.cfg, st, b, d.pruneCache)

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		srv := ipc.NewServer(paths.SocketPath(), eng.Commands())
		if err := srv.Serve(ctx); err != nil {
			log.Error("control socket failed", "err", err)
			cancel()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		workspace.Listen(ctx, eng.Commands())
	}()

	eng.Run(ctx)
	cancel()
	wg.Wait()
	log.Info("wallshift stopped")
	return nil
}

// pruneCache keeps thumbnails and previews under general.cache_max_mb.
func (d *Daemon) pruneCache(_ context.Context) {
	if d.cfg.General.CacheMaxMB <= 0 {
		return
	}
	maxBytes := uint64(d.cfg.General.CacheMaxMB) * 1024 * 1024
	freed, err := cache.Prune(d.paths, maxBytes)
	if err != nil {
		log.Warn("cache prune failed", "err", err)
		return
	}
	if freed > 0 {
		log.Info("pruned cache", "freed_bytes", freed)
	}
}
