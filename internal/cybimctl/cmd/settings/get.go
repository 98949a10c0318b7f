package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show device playback settings",
		Example: `  # Show the current settings
  cybimctl settings get

  # Show settings in JSON format
  cybimctl settings get -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			s, err := client.GetSettings(cmd.Context())
			if err != nil {
				return fmt.Errorf("error getting settings: %w", err)
			}

			if output == "json" {
				return util.PrintJSON(cmd.OutOrStdout(), s)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Orientation: %s\n", s.Orientation)
			fmt.Fprintf(cmd.OutOrStdout(), "Transition: %s (%dms)\n", s.Transition, s.TransitionDurationMs)
			fmt.Fprintf(cmd.OutOrStdout(), "Default image duration: %ds\n", s.DefaultImageDuration)
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart: %v\n", s.AutoStart)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json)")
	return cmd
}
