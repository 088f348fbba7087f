package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wallshift/internal/cache"
	"wallshift/internal/cli/cmd/utils"
	"wallshift/internal/paths"
)

func NewCacheCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the thumbnail and preview caches",
	}
	c.AddCommand(newCacheStatsCmd(), newCachePruneCmd())
	return c
}

func newCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache sizes",
		Run: func(cmd *cobra.Command, args []string) {
			p, err := paths.New()
			if err != nil {
				log.Fatalf("Error resolving directories: %v", err)
			}
			stats := cache.CollectStats(p)
			utils.PrintJSONColored(map[string]any{
				"thumbnails_bytes": stats.ThumbnailsSize,
				"thumbnails":       stats.ThumbnailCount,
				"previews_bytes":   stats.PreviewsSize,
				"previews":         stats.PreviewCount,
				"total_bytes":      stats.TotalSize,
			})
		},
	}
}

func newCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Prune caches down to general.cache_max_mb",
		Run: func(cmd *cobra.Command, args []string) {
			p, err := paths.New()
			if err != nil {
				log.Fatalf("Error resolving directories: %v", err)
			}
			maxBytes := uint64(viper.GetInt64("general.cache_max_mb")) * 1024 * 1024
			freed, err := cache.Prune(p, maxBytes)
			if err != nil {
				log.Fatalf("Prune failed: %v", err)
			}
			log.Infof("Freed %d bytes", freed)
		},
	}
}
