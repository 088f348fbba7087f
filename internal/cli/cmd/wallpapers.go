package cmd

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wallshift/internal/cli/cmd/utils"
	"wallshift/internal/paths"
	"wallshift/internal/store"
	"wallshift/internal/types"
)

func NewWallpapersCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "wallpapers",
		Short: "Inspect the local wallpaper collection",
	}
	c.AddCommand(newWallpapersListCmd(), newWallpapersStatsCmd(), newWallpapersAddCmd(), newWallpapersDeleteCmd())
	return c
}

func openCollection() *store.Store {
	p, err := paths.New()
	if err != nil {
		log.Fatalf("Error resolving directories: %v", err)
	}
	st, err := store.Open(p.DBPath())
	if err != nil {
		log.Fatalf("Error opening wallpaper store: %v", err)
	}
	return st
}

func newWallpapersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all wallpapers in the collection",
		Run: func(cmd *cobra.Command, args []string) {
			st := openCollection()
			defer st.Close()

			wallpapers, err := st.List(cmd.Context())
			if err != nil {
				log.Fatalf("Error listing wallpapers: %v", err)
			}
			if len(wallpapers) == 0 {
				log.Info("No wallpapers in the collection yet, try 'wallshift fetch'")
				return
			}
			utils.PrintJSONColored(wallpapers)
		},
	}
}

func newWallpapersStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics",
		Run: func(cmd *cobra.Command, args []string) {
			st := openCollection()
			defer st.Close()

			wallpapers, err := st.List(cmd.Context())
			if err != nil {
				log.Fatalf("Error listing wallpapers: %v", err)
			}

			bySource := map[types.SourceType]int{}
			var totalUses int
			for _, wp := range wallpapers {
				bySource[wp.SourceType]++
				totalUses += wp.UseCount
			}
			utils.PrintJSONColored(map[string]any{
				"total":      len(wallpapers),
				"by_source":  bySource,
				"total_uses": totalUses,
			})
		},
	}
}

func newWallpapersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [wallpaper1.jpg] [wallpaper2.png] ...",
		Short: "Import local image files into the collection",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
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

			added := 0
			for _, arg := range args {
				if err := importLocal(cmd, st, p, utils.CanonicalPath(arg)); err != nil {
					log.Warnf("Skipping %s: %v", arg, err)
					continue
				}
				added++
			}
			log.Infof("Imported %d wallpapers", added)
		},
	}
}

func importLocal(cmd *cobra.Command, st *store.Store, p *paths.Paths, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	imgCfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}

	id := uuid.NewString()
	dest := filepath.Join(p.WallpapersDir(), id+filepath.Ext(path))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}

	wp := &types.Wallpaper{
		ID:         id,
		SourceType: types.SourceLocal,
		SourceID:   path,
		Width:      imgCfg.Width,
		Height:     imgCfg.Height,
		FilePath:   dest,
		AddedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if err := st.Insert(cmd.Context(), wp); err != nil {
		_ = os.Remove(dest)
		return err
	}
	log.Infof("Imported %s as %s (%dx%d)", path, id, wp.Width, wp.Height)
	return nil
}

func newWallpapersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [wallpaper-id]",
		Short: "Remove a wallpaper from the collection",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			st := openCollection()
			defer st.Close()

			deleted, err := st.Delete(cmd.Context(), args[0])
			if err != nil {
				log.Fatalf("Error deleting wallpaper: %v", err)
			}
			if !deleted {
				log.Fatalf("No wallpaper with id %s", args[0])
			}
			log.Infof("Deleted wallpaper %s", args[0])
		},
	}
}
