package settings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newSetCommand() *cobra.Command {
	var (
		orientation        string
		transition         string
		transitionDuration int
		imageDuration      int
		autoStart          bool
	)

	cmd := &cobra.Command{
		Use:   "set [flags]",
		Short: "Change device playback settings",
		Long: `Change device playback settings. Only the fields given as flags change;
the rest keep their current values.`,
		Example: `  # Mount the panel vertically
  cybimctl settings set --orientation portrait

  # Slower fades and longer image dwell
  cybimctl settings set --transition fade --transition-duration 800 --image-duration 15

  # Boot straight into playback
  cybimctl settings set --autostart`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			current, err := client.GetSettings(cmd.Context())
			if err != nil {
				return fmt.Errorf("error getting settings: %w", err)
			}

			if cmd.Flags().Changed("orientation") {
				current.Orientation = v1alpha1.Orientation(orientation)
			}
			if cmd.Flags().Changed("transition") {
				current.Transition = v1alpha1.Transition(transition)
			}
			if cmd.Flags().Changed("transition-duration") {
				current.TransitionDurationMs = transitionDuration
			}
			if cmd.Flags().Changed("image-duration") {
				current.DefaultImageDuration = imageDuration
			}
			if cmd.Flags().Changed("autostart") {
				current.AutoStart = autoStart
			}

			if err := client.SetSettings(cmd.Context(), current); err != nil {
				return fmt.Errorf("error updating settings: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Settings updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&orientation, "orientation", "", "Panel orientation (landscape, landscape-inverted, portrait, portrait-inverted)")
	cmd.Flags().StringVar(&transition, "transition", "", "Transition between media (none, fade, slide, zoom)")
	cmd.Flags().IntVar(&transitionDuration, "transition-duration", 0, "Transition duration in milliseconds")
	cmd.Flags().IntVar(&imageDuration, "image-duration", 0, "Default image duration in seconds")
	cmd.Flags().BoolVar(&autoStart, "autostart", false, "Start playback when the daemon boots")

	return cmd
}
