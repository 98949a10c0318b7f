package campaign

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a campaign",
		Example: `  # Remove a campaign from the rotation
  cybimctl campaign remove 6b81ca3d-...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid campaign id %q: %w", args[0], err)
			}

			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			if err := client.DeleteCampaign(cmd.Context(), id); err != nil {
				return fmt.Errorf("error removing campaign: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Campaign %s removed\n", id)
			return nil
		},
	}

	return cmd
}
