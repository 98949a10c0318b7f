package player

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newStartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start playback",
		Long: `Start a playback session from the device's stored campaigns. Starting
while already playing restarts the session with freshly evaluated
schedules.`,
		Example: `  # Start (or restart) playback
  cybimctl player start`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			status, err := client.StartPlayer(cmd.Context())
			if err != nil {
				return fmt.Errorf("error starting playback: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Playback %s\n", status.State)
			if status.CampaignName != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Now playing: %s / %s\n", status.CampaignName, status.ItemName)
			}
			return nil
		},
	}
}
