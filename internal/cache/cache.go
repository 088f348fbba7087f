// Package cache keeps the thumbnail and preview caches under the configured
// size cap. Wallpaper files themselves are never touched.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"wallshift/internal/paths"
)

type Stats struct {
	ThumbnailsSize uint64
	PreviewsSize   uint64
	TotalSize      uint64
	ThumbnailCount int
	PreviewCount   int
}

// CollectStats scans the cache directories and returns size stats.
func CollectStats(p *paths.Paths) Stats {
	thumbSize, thumbCount := dirStats(p.ThumbnailsDir())
	prevSize, prevCount := dirStats(p.PreviewsDir())
	return Stats{
		ThumbnailsSize: thumbSize,
		PreviewsSize:   prevSize,
		TotalSize:      thumbSize + prevSize,
		ThumbnailCount: thumbCount,
		PreviewCount:   prevCount,
	}
}

// Prune deletes cached files until the caches fit under maxBytes. Previews go
// first, oldest first; thumbnails only if previews were not enough. Returns
// bytes freed.
func Prune(p *paths.Paths, maxBytes uint64) (uint64, error) {
	stats := CollectStats(p)
	if stats.TotalSize <= maxBytes {
		return 0, nil
	}

	target := stats.TotalSize - maxBytes
	freed, err := pruneDir(p.PreviewsDir(), target)
	if err != nil {
		return freed, err
	}
	if freed < target {
		more, err := pruneDir(p.ThumbnailsDir(), target-freed)
		freed += more
		if err != nil {
			return freed, err
		}
	}

	log.Info("cache pruned", "freed_bytes", freed)
	return freed, nil
}

type cacheFile struct {
	path     string
	size     uint64
	modified time.Time
}

func pruneDir(dir string, target uint64) (uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache dir %s: %w", dir, err)
	}

	files := make([]cacheFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, cacheFile{
			path:     filepath.Join(dir, entry.Name()),
			size:     uint64(info.Size()),
			modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modified.Before(files[j].modified)
	})

	var freed uint64
	for _, f := range files {
		if freed >= target {
			break
		}
		if err := os.Remove(f.path); err != nil {
			log.Warn("failed to remove cache file", "path", f.path, "err", err)
			continue
		}
		freed += f.size
	}
	return freed, nil
}

func dirStats(dir string) (uint64, int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, 0
	}

	var size uint64
	var count int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		size += uint64(info.Size())
		count++
	}
	return size, count
}
