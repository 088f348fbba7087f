package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"resty.dev/v3"

	"wallshift/internal/config"
	"wallshift/internal/store"
	"wallshift/internal/types"
)

// Catalog is the slice of the store the fetcher needs.
type Catalog interface {
	Insert(ctx context.Context, wp *types.Wallpaper) error
	BySource(ctx context.Context, sourceType types.SourceType, sourceID string) (*types.Wallpaper, error)
}

// Fetcher downloads provider search results into the wallpapers directory
// and records them in the store, skipping already-known and filtered-out
// images.
type Fetcher struct {
	catalog Catalog
	dir     string
	filter  config.FilterConfig
	client  *resty.Client
}

func NewFetcher(catalog Catalog, wallpapersDir string, filter config.FilterConfig) *Fetcher {
	return &Fetcher{
		catalog: catalog,
		dir:     wallpapersDir,
		filter:  filter,
		client:  resty.New().SetHeader("User-Agent", "wallshift").SetTimeout(2 * time.Minute),
	}
}

// Fetch asks each source for candidates and downloads the ones that pass
// the filter. It returns the wallpapers added to the store. Per-image
// failures are logged and skipped; a source that fails entirely is also
// skipped so one provider outage does not abort the run.
func (f *Fetcher) Fetch(ctx context.Context, sources []Source, query string, count int) ([]types.Wallpaper, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources enabled")
	}

	var added []types.Wallpaper
	for _, src := range sources {
		results, err := src.Search(ctx, query, count)
		if err != nil {
			log.Warn("source search failed", "source", src.Name(), "err", err)
			continue
		}
		log.Debug("source returned candidates", "source", src.Name(), "count", len(results))

		for _, r := range results {
			wp, err := f.fetchOne(ctx, src, r)
			if err != nil {
				log.Warn("skipping wallpaper", "source", src.Name(), "source_id", r.SourceID, "err", err)
				continue
			}
			if wp != nil {
				added = append(added, *wp)
			}
		}
	}
	return added, nil
}

// fetchOne returns (nil, nil) when the result is filtered out or already
// in the collection.
func (f *Fetcher) fetchOne(ctx context.Context, src Source, r Result) (*types.Wallpaper, error) {
	if f.excluded(r.Tags) {
		return nil, nil
	}
	if r.Width > 0 && r.Height > 0 && !f.bigEnough(r.Width, r.Height) {
		return nil, nil
	}

	existing, err := f.catalog.BySource(ctx, src.SourceType(), r.SourceID)
	if err != nil && !errors.Is(err, store.ErrWallpaperNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, nil
	}

	res, err := f.client.R().SetContext(ctx).Get(r.URL)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("download: %s", res.Status())
	}
	data := res.Bytes()

	imgCfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if !f.bigEnough(imgCfg.Width, imgCfg.Height) {
		return nil, nil
	}

	id := uuid.NewString()
	path := filepath.Join(f.dir, id+extensionFor(format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write wallpaper: %w", err)
	}

	wp := &types.Wallpaper{
		ID:         id,
		SourceType: src.SourceType(),
		SourceID:   r.SourceID,
		SourceURL:  r.URL,
		Width:      imgCfg.Width,
		Height:     imgCfg.Height,
		Tags:       r.Tags,
		FilePath:   path,
		AddedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := f.catalog.Insert(ctx, wp); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("record wallpaper: %w", err)
	}
	log.Info("added wallpaper", "id", id, "source", src.Name(), "size", fmt.Sprintf("%dx%d", wp.Width, wp.Height))
	return wp, nil
}

func (f *Fetcher) bigEnough(width, height int) bool {
	return width >= f.filter.MinWidth && height >= f.filter.MinHeight
}

func (f *Fetcher) excluded(tags []string) bool {
	for _, tag := range tags {
		for _, excluded := range f.filter.ExcludeTags {
			if strings.EqualFold(tag, excluded) {
				return true
			}
		}
	}
	return false
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	default:
		return ".img"
	}
}
