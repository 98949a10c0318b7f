package player

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newStatusCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show what the player is doing",
		Example: `  # Human-readable status
  cybimctl player status

  # Full status in JSON
  cybimctl player status -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			status, err := client.PlayerStatus(cmd.Context())
			if err != nil {
				return fmt.Errorf("error getting player status: %w", err)
			}

			if output == "json" {
				return util.PrintJSON(cmd.OutOrStdout(), status)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "State: %s\n", status.State)
			if status.State == v1alpha1.PlayerPlaying {
				fmt.Fprintf(cmd.OutOrStdout(), "Campaign: %s\n", status.CampaignName)
				fmt.Fprintf(cmd.OutOrStdout(), "Item: %s (%s)\n", status.ItemName, status.ItemKind)
				if status.ItemKind == v1alpha1.MediaKindVideo {
					fmt.Fprintf(cmd.OutOrStdout(), "Buffer: %s\n", status.ActiveBuffer)
				}
				if status.StartedAt != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", util.FormatAge(*status.StartedAt))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	return cmd
}
