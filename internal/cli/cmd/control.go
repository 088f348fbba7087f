package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wallshift/internal/ipc"
	"wallshift/internal/types"
)

// sendSimple fires a no-argument command at the daemon and dies on failure.
func sendSimple(command string) {
	response, err := ipc.Send(ipc.Request{Command: command})
	if err != nil {
		log.Fatalf("Failed to send '%s' command: %v", command, err)
	}
	if err := response.Err(); err != nil {
		log.Fatalf("Daemon returned error: %v", err)
	}
}

func NewNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Switch to the next wallpaper",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdNext)
			log.Info("Next wallpaper command sent")
		},
	}
}

func NewPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Switch to the previous wallpaper",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdPrev)
			log.Info("Previous wallpaper command sent")
		},
	}
}

func NewPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause automatic wallpaper rotation",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdPause)
			log.Info("Rotation paused")
		},
	}
}

func NewResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume automatic wallpaper rotation",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdResume)
			log.Info("Rotation resumed")
		},
	}
}

func NewReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the config file and wallpaper collection",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdReload)
			log.Info("Reload command sent")
		},
	}
}

func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the wallshift daemon",
		Run: func(cmd *cobra.Command, args []string) {
			sendSimple(ipc.CmdQuit)
			log.Info("Stop command sent")
		},
	}
}

func NewSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [wallpaper-id]",
		Short: "Set a specific wallpaper by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			response, err := ipc.Send(ipc.Request{Command: ipc.CmdSetWallpaper, ID: args[0]})
			if err != nil {
				log.Fatalf("Failed to send 'set_wallpaper' command: %v", err)
			}
			if err := response.Err(); err != nil {
				log.Fatalf("Daemon returned error: %v", err)
			}
			log.Infof("Wallpaper set to %s", args[0])
		},
	}
}

func NewModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "mode [mode]",
		Short:     "Switch the display mode",
		Long:      `Switches the daemon's display mode. Valid modes: ` + modesHelp(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: modeNames(),
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := types.ParseDisplayMode(args[0]); err != nil {
				log.Fatalf("%v", err)
			}
			response, err := ipc.Send(ipc.Request{Command: ipc.CmdSetMode, Mode: args[0]})
			if err != nil {
				log.Fatalf("Failed to send 'set_mode' command: %v", err)
			}
			if err := response.Err(); err != nil {
				log.Fatalf("Daemon returned error: %v", err)
			}
			log.Infof("Display mode set to %s", args[0])
		},
	}
}

func modeNames() []string {
	names := make([]string, 0, len(types.AllModes))
	for _, m := range types.AllModes {
		names = append(names, string(m))
	}
	return names
}

func modesHelp() string {
	var out string
	for i, m := range types.AllModes {
		if i > 0 {
			out += ", "
		}
		out += string(m)
	}
	return out
}
