// Package paths resolves the XDG directories and well-known files used by
// both the daemon and the CLI.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
}

func New() (*Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(home, ".local", "share")
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}

	return &Paths{
		ConfigDir: filepath.Join(configDir, "wallshift"),
		DataDir:   filepath.Join(dataDir, "wallshift"),
		CacheDir:  filepath.Join(cacheDir, "wallshift"),
	}, nil
}

func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "wallshift.toml")
}

func (p *Paths) DBPath() string {
	return filepath.Join(p.DataDir, "wallshift.db")
}

func (p *Paths) WallpapersDir() string {
	return filepath.Join(p.DataDir, "wallpapers")
}

func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, "wallshift.log")
}

func (p *Paths) LockFile() string {
	return filepath.Join(p.DataDir, "wallshift.lock")
}

func (p *Paths) ThumbnailsDir() string {
	return filepath.Join(p.CacheDir, "thumbnails")
}

func (p *Paths) PreviewsDir() string {
	return filepath.Join(p.CacheDir, "previews")
}

// SocketPath is the per-user control socket. Scoped by uid so concurrent
// sessions on a multi-user host do not collide.
func SocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("wallshift-%d.sock", os.Getuid()))
}

// EnsureDirs creates every directory wallshift writes into.
func (p *Paths) EnsureDirs() error {
	for _, dir := range []string{
		p.ConfigDir,
		p.DataDir,
		p.CacheDir,
		p.WallpapersDir(),
		p.ThumbnailsDir(),
		p.PreviewsDir(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
