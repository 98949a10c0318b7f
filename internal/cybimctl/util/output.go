package util

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// PrintJSON writes a JSON representation of v to w with proper indentation
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// NewTabWriter creates a new tabwriter configured for CLI output
func NewTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// FormatSchedule renders a campaign schedule compactly for table output
func FormatSchedule(s v1alpha1.Schedule) string {
	if !s.Enabled {
		return "always"
	}

	window := "all day"
	if s.StartTime != "" || s.EndTime != "" {
		window = fmt.Sprintf("%s-%s", s.StartTime, s.EndTime)
	}

	days := "every day"
	if len(s.Days) > 0 {
		var names []string
		for _, d := range s.Days {
			names = append(names, d.String()[:3])
		}
		days = strings.Join(names, ",")
	}

	return fmt.Sprintf("%s %s", days, window)
}

// FormatItems summarizes a campaign's media list for table output
func FormatItems(items []v1alpha1.MediaItem) string {
	var images, videos int
	for _, item := range items {
		switch item.Kind {
		case v1alpha1.MediaKindImage:
			images++
		case v1alpha1.MediaKindVideo:
			videos++
		}
	}
	return fmt.Sprintf("%d items (%d image, %d video)", len(items), images, videos)
}

// FormatAge formats a timestamp's age in a human-friendly way
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	d := time.Since(t)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}
