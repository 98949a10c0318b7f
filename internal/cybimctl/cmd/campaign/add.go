package campaign

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

func newAddCommand() *cobra.Command {
	var (
		items []string
		loop  bool
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a campaign",
		Long: `Add a new campaign to the rotation.

Media items are given in play order with the --item flag, formatted as
KIND=CONTENT[,SECONDS]. KIND is image or video; SECONDS sets how long
an image stays on screen and is ignored for videos, which play to
completion.`,
		Example: `  # A campaign mixing an image and two videos
  cybimctl campaign add lobby \
    --item image=/media/welcome.jpg,8 \
    --item video=/media/intro.mp4 \
    --item video=/media/products.mp4

  # A single clip that loops in place while it is the only campaign
  cybimctl campaign add spotlight --item video=/media/spot.mp4 --loop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			media, err := parseItems(items)
			if err != nil {
				return err
			}

			c := &v1alpha1.Campaign{
				Name:  name,
				Items: media,
				Loop:  loop,
			}

			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			created, err := client.CreateCampaign(cmd.Context(), c)
			if err != nil {
				return fmt.Errorf("error adding campaign: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Campaign %q added (id %s)\n", name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "Media item as KIND=CONTENT[,SECONDS], in play order (required)")
	cmd.Flags().BoolVar(&loop, "loop", false, "Restart in place when this is the only eligible campaign")

	cmd.MarkFlagRequired("item")

	return cmd
}

// parseItems turns KIND=CONTENT[,SECONDS] specs into media items, with
// item names derived from the content file name
func parseItems(specs []string) ([]v1alpha1.MediaItem, error) {
	var items []v1alpha1.MediaItem
	for _, spec := range specs {
		parts := strings.SplitN(spec, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid item format %q - use KIND=CONTENT[,SECONDS]", spec)
		}

		kind := v1alpha1.MediaKind(parts[0])
		if kind != v1alpha1.MediaKindImage && kind != v1alpha1.MediaKindVideo {
			return nil, fmt.Errorf("unknown media kind %q - use image or video", parts[0])
		}

		content := parts[1]
		var duration *int
		if idx := strings.LastIndex(content, ","); idx != -1 {
			if secs, err := strconv.Atoi(content[idx+1:]); err == nil {
				if secs <= 0 {
					return nil, fmt.Errorf("item duration must be positive in %q", spec)
				}
				duration = &secs
				content = content[:idx]
			}
		}

		base := path.Base(content)
		name := strings.TrimSuffix(base, path.Ext(base))

		items = append(items, v1alpha1.MediaItem{
			Name:     name,
			Kind:     kind,
			Content:  content,
			Duration: duration,
		})
	}
	return items, nil
}
