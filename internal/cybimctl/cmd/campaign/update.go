package campaign

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newUpdateCommand() *cobra.Command {
	var (
		name  string
		items []string
		loop  bool
	)

	cmd := &cobra.Command{
		Use:   "update ID [flags]",
		Short: "Update a campaign",
		Long: `Update an existing campaign. Only the fields given as flags change;
--item replaces the full media list in the order given.`,
		Example: `  # Rename a campaign
  cybimctl campaign update 6b81ca3d-... --name evening-lobby

  # Replace the media list
  cybimctl campaign update 6b81ca3d-... \
    --item image=/media/new.jpg,10 \
    --item video=/media/new.mp4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid campaign id %q: %w", args[0], err)
			}

			update := &v1alpha1.CampaignUpdate{}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("item") {
				media, err := parseItems(items)
				if err != nil {
					return err
				}
				update.Items = media
			}
			if cmd.Flags().Changed("loop") {
				update.Loop = &loop
			}

			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			updated, err := client.UpdateCampaign(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("error updating campaign: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Campaign %q updated (version %d)\n", updated.Name, updated.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New campaign name")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Replacement media items as KIND=CONTENT[,SECONDS]")
	cmd.Flags().BoolVar(&loop, "loop", false, "Restart in place when this is the only eligible campaign")

	return cmd
}
