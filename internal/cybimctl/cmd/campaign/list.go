package campaign

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newListCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		Example: `  # List all campaigns in play order
  cybimctl campaign list

  # Show campaigns in JSON format
  cybimctl campaign list -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			campaigns, err := client.ListCampaigns(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing campaigns: %w", err)
			}

			if output == "json" {
				return util.PrintJSON(cmd.OutOrStdout(), campaigns)
			}

			tw := util.NewTabWriter(cmd.OutOrStdout())
			defer tw.Flush()

			fmt.Fprintf(tw, "ID\tNAME\tMEDIA\tSCHEDULE\tLOOP\tUPDATED\n")
			for _, c := range campaigns {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\t%s\n",
					c.ID,
					c.Name,
					util.FormatItems(c.Items),
					util.FormatSchedule(c.Schedule),
					c.Loop,
					util.FormatAge(c.UpdatedAt),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json)")
	return cmd
}
