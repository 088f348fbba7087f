package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"wallshift/internal/paths"
)

func testPaths(t *testing.T) *paths.Paths {
	t.Helper()
	root := t.TempDir()
	p := &paths.Paths{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		CacheDir:  filepath.Join(root, "cache"),
	}
	if err := p.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}
	return p
}

func writeCacheFile(t *testing.T, dir, name string, size int, age time.Duration) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	mtime := time.Now().Add(-age)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

func TestCollectStats(t *testing.T) {
	p := testPaths(t)
	writeCacheFile(t, p.ThumbnailsDir(), "a.jpg", 100, 0)
	writeCacheFile(t, p.ThumbnailsDir(), "b.jpg", 200, 0)
	writeCacheFile(t, p.PreviewsDir(), "c.jpg", 300, 0)

	stats := CollectStats(p)
	if stats.ThumbnailsSize != 300 || stats.ThumbnailCount != 2 {
		t.Errorf("thumbnails = %d bytes / %d files", stats.ThumbnailsSize, stats.ThumbnailCount)
	}
	if stats.PreviewsSize != 300 || stats.PreviewCount != 1 {
		t.Errorf("previews = %d bytes / %d files", stats.PreviewsSize, stats.PreviewCount)
	}
	if stats.TotalSize != 600 {
		t.Errorf("total = %d, want 600", stats.TotalSize)
	}
}

func TestPruneWithinLimitIsNoOp(t *testing.T) {
	p := testPaths(t)
	writeCacheFile(t, p.PreviewsDir(), "a.jpg", 100, 0)

	freed, err := Prune(p, 1000)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if freed != 0 {
		t.Errorf("freed = %d, want 0", freed)
	}
}

func TestPruneRemovesOldestPreviewsFirst(t *testing.T) {
	p := testPaths(t)
	writeCacheFile(t, p.PreviewsDir(), "old.jpg", 400, 48*time.Hour)
	writeCacheFile(t, p.PreviewsDir(), "new.jpg", 400, time.Hour)
	writeCacheFile(t, p.ThumbnailsDir(), "thumb.jpg", 200, 72*time.Hour)

	// total 1000, cap 600: needs 400 freed, the oldest preview alone covers it
	freed, err := Prune(p, 600)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if freed != 400 {
		t.Errorf("freed = %d, want 400", freed)
	}
	if _, err := os.Stat(filepath.Join(p.PreviewsDir(), "old.jpg")); !os.IsNotExist(err) {
		t.Error("oldest preview survived the prune")
	}
	if _, err := os.Stat(filepath.Join(p.PreviewsDir(), "new.jpg")); err != nil {
		t.Error("newest preview was pruned")
	}
	if _, err := os.Stat(filepath.Join(p.ThumbnailsDir(), "thumb.jpg")); err != nil {
		t.Error("thumbnail pruned although previews sufficed")
	}
}

func TestPruneFallsBackToThumbnails(t *testing.T) {
	p := testPaths(t)
	writeCacheFile(t, p.PreviewsDir(), "p.jpg", 200, time.Hour)
	writeCacheFile(t, p.ThumbnailsDir(), "t1.jpg", 400, 48*time.Hour)
	writeCacheFile(t, p.ThumbnailsDir(), "t2.jpg", 400, time.Hour)

	// total 1000, cap 450: previews (200) are not enough, oldest thumbnail goes too
	freed, err := Prune(p, 450)
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if freed != 600 {
		t.Errorf("freed = %d, want 600", freed)
	}
	if _, err := os.Stat(filepath.Join(p.ThumbnailsDir(), "t2.jpg")); err != nil {
		t.Error("newest thumbnail should survive")
	}
}
