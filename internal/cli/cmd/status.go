package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"wallshift/internal/cli/cmd/utils"
	"wallshift/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get wallshift status",
		Long:  `Returns the current status of the wallshift daemon.`,
		Run: func(cmd *cobra.Command, args []string) {
			response, err := ipc.Send(ipc.Request{Command: ipc.CmdStatus})
			if err != nil {
				log.Fatalf("Error sending command: %v", err)
			}
			if err := response.Err(); err != nil {
				log.Fatalf("Daemon returned error: %v", err)
			}

			utils.PrintJSONColored(response.Data)
		},
	}
}
