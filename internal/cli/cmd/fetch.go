package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wallshift/internal/config"
	"wallshift/internal/paths"
	"wallshift/internal/source"
	"wallshift/internal/store"
)

func NewFetchCmd() *cobra.Command {
	var query string
	var count int

	c := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch new wallpapers from the enabled sources",
		Long: `Searches the providers enabled in the [sources] config section and
downloads matching wallpapers into the local collection.`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Invalid configuration: %v", err)
			}

			p, err := paths.New()
			if err != nil {
				log.Fatalf("Error resolving directories: %v", err)
			}
			if err := p.EnsureDirs(); err != nil {
				log.Fatalf("Error creating directories: %v", err)
			}

			st, err := store.Open(p.DBPath())
			if err != nil {
				log.Fatalf("Error opening wallpaper store: %v", err)
			}
			defer st.Close()

			sources := source.FromConfig(cfg)
			fetcher := source.NewFetcher(st, p.WallpapersDir(), cfg.Filter)

			added, err := fetcher.Fetch(cmd.Context(), sources, query, count)
			if err != nil {
				log.Fatalf("Fetch failed: %v", err)
			}
			log.Infof("Added %d new wallpapers", len(added))
		},
	}

	c.Flags().StringVarP(&query, "query", "q", "", "search query, e.g. 'mountains'")
	c.Flags().IntVarP(&count, "count", "n", 10, "wallpapers to request per source")
	return c
}
