package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wallshift"
	"wallshift/internal/cli/cmd"
	"wallshift/internal/cli/cmd/utils"
)

// rootCmd represents the base command when called without any subcommands.
// Bare `wallshift` starts the daemon, same as `wallshift start`.
var rootCmd = &cobra.Command{
	Use:   "wallshift",
	Short: "A wallpaper rotation daemon for Wayland compositors",
	Long: `Wallshift rotates wallpapers through hyprpaper or swww on a timer,
per workspace, or on a time-of-day schedule, and can fetch new
wallpapers from wallhaven, unsplash and pexels.`,
	Run: func(c *cobra.Command, args []string) {
		if v, err := c.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			utils.PrintJSONColored(viper.AllSettings())
			return
		}

		if v, err := c.Flags().GetBool("installconfig"); err == nil && v {
			utils.InstallDefaultConfig()
			return
		}

		if v, err := c.Flags().GetBool("version"); err == nil && v {
			babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
			green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
			log.Infof("%v version %v",
				babyBlue.Render("wallshift"),
				green.Render(strings.Trim(wallshift.Version, "\n\r ")))
			return
		}

		background, _ := c.Flags().GetBool("background")
		cmd.StartDaemon(background)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)
	RegisterFlags(rootCmd)

	rootCmd.AddCommand(
		cmd.NewStartCmd(),
		cmd.NewStatusCmd(),
		cmd.NewNextCmd(),
		cmd.NewPrevCmd(),
		cmd.NewSetCmd(),
		cmd.NewModeCmd(),
		cmd.NewPauseCmd(),
		cmd.NewResumeCmd(),
		cmd.NewReloadCmd(),
		cmd.NewStopCmd(),
		cmd.NewFetchCmd(),
		cmd.NewWallpapersCmd(),
		cmd.NewCacheCmd(),
		cmd.NewGenManCmd(rootCmd),
	)
}
