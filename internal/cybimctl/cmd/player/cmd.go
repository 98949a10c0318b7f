// Package player implements the player lifecycle subcommands
package player

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Control the playback session",
		Long: `Player commands start and stop the playback session on the device and
report what is currently on screen.`,
	}

	cmd.AddCommand(
		newStartCommand(),
		newStopCommand(),
		newStatusCommand(),
	)

	return cmd
}
