// Package settings implements the device settings subcommands
package settings

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage device playback settings",
		Long: `Settings commands read and change device-wide playback behavior:
screen orientation, the transition between images, the default image
duration, and whether playback starts on boot.`,
	}

	cmd.AddCommand(
		newGetCommand(),
		newSetCommand(),
	)

	return cmd
}
