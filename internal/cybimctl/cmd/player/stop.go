package player

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop playback",
		Example: `  # Blank the screen
  cybimctl player stop`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			status, err := client.StopPlayer(cmd.Context())
			if err != nil {
				return fmt.Errorf("error stopping playback: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Playback %s\n", status.State)
			return nil
		},
	}
}
