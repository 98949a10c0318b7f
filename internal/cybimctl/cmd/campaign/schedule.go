package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimctl/util"
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func newScheduleCommand() *cobra.Command {
	var (
		start   string
		end     string
		days    []string
		disable bool
	)

	cmd := &cobra.Command{
		Use:   "schedule ID [flags]",
		Short: "Set a campaign's schedule",
		Long: `Restrict when a campaign is eligible to play.

The window runs from --start to --end within each listed day; a window
whose end is not after its start never matches. Without --days the
window applies every day. Use --disable to clear the schedule so the
campaign always plays.`,
		Example: `  # Lunch menu on weekdays
  cybimctl campaign schedule 6b81ca3d-... \
    --start 11:00 --end 14:00 \
    --days mon,tue,wed,thu,fri

  # Let a campaign play around the clock again
  cybimctl campaign schedule 6b81ca3d-... --disable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid campaign id %q: %w", args[0], err)
			}

			schedule := &v1alpha1.Schedule{}
			if !disable {
				parsed, err := parseWeekdays(days)
				if err != nil {
					return err
				}
				schedule = &v1alpha1.Schedule{
					Enabled:   true,
					StartTime: start,
					EndTime:   end,
					Days:      parsed,
				}
			}

			client, err := util.GetClientFromCommand(cmd)
			if err != nil {
				return err
			}

			update := &v1alpha1.CampaignUpdate{Schedule: schedule}
			updated, err := client.UpdateCampaign(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("error updating schedule: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Campaign %q schedule: %s\n",
				updated.Name, util.FormatSchedule(updated.Schedule))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Window start as HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "Window end as HH:MM")
	cmd.Flags().StringSliceVar(&days, "days", nil, "Weekdays (mon,tue,...); empty means every day")
	cmd.Flags().BoolVar(&disable, "disable", false, "Clear the schedule entirely")

	return cmd
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, name := range names {
		d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q - use mon, tue, wed, thu, fri, sat, sun", name)
		}
		days = append(days, d)
	}
	return days, nil
}
