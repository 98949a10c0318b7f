// Package campaign implements the campaign management subcommands
package campaign

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
		Long: `Campaign commands allow you to add, update, and remove the campaigns
the player rotates through. Each campaign is an ordered list of images
and videos, optionally restricted to a daily time window and weekdays.`,
	}

	cmd.AddCommand(
		newAddCommand(),
		newListCommand(),
		newUpdateCommand(),
		newScheduleCommand(),
		newRemoveCommand(),
	)

	return cmd
}
