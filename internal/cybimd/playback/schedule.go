package playback

import (
	"time"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// IsEligible reports whether the campaign may play at the given
// instant. A campaign with no media is never eligible. A disabled
// schedule means the campaign always plays; an enabled one requires
// the weekday to match (an empty day list matches every day) and the
// time of day to fall inside [start, end] inclusive.
//
// Windows with end before start would span midnight; those are not
// supported and evaluate as never eligible.
func IsEligible(c v1alpha1.Campaign, now time.Time) bool {
	if len(c.Items) == 0 {
		return false
	}
	if !c.Schedule.Enabled {
		return true
	}
	if !dayMatches(c.Schedule.Days, now.Weekday()) {
		return false
	}
	start, err := v1alpha1.ParseClock(c.Schedule.StartTime)
	if err != nil {
		return false
	}
	end, err := v1alpha1.ParseClock(c.Schedule.EndTime)
	if err != nil {
		return false
	}
	if end < start {
		return false
	}
	minutes := now.Hour()*60 + now.Minute()
	return minutes >= start && minutes <= end
}

// FilterEligible returns the campaigns eligible at now, preserving
// input order. The result is the eligibility snapshot the sequencer
// rotates over; it is computed once per playback session and not
// re-evaluated while the session runs.
func FilterEligible(campaigns []v1alpha1.Campaign, now time.Time) []v1alpha1.Campaign {
	eligible := make([]v1alpha1.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if IsEligible(c, now) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

func dayMatches(days []time.Weekday, day time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
