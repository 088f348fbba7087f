// Package source pulls wallpapers from remote providers into the local
// collection. Each provider implements Source; the Fetcher drives the
// download, filtering and store bookkeeping.
package source

import (
	"context"

	"wallshift/internal/config"
	"wallshift/internal/types"
)

// Result is one candidate wallpaper returned by a provider search.
type Result struct {
	SourceID string
	URL      string
	Width    int
	Height   int
	Tags     []string
}

// Source is a remote wallpaper provider.
type Source interface {
	Name() string
	SourceType() types.SourceType
	Search(ctx context.Context, query string, count int) ([]Result, error)
}

// FromConfig builds the providers enabled in the [sources] config section.
func FromConfig(cfg *config.Config) []Source {
	var sources []Source
	if cfg.Sources.Wallhaven.Enabled {
		sources = append(sources, NewWallhaven(cfg.Sources.Wallhaven))
	}
	if cfg.Sources.Unsplash.Enabled && cfg.Sources.Unsplash.AccessKey != "" {
		sources = append(sources, NewUnsplash(cfg.Sources.Unsplash))
	}
	if cfg.Sources.Pexels.Enabled && cfg.Sources.Pexels.APIKey != "" {
		sources = append(sources, NewPexels(cfg.Sources.Pexels))
	}
	return sources
}
