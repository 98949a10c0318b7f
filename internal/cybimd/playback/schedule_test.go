package playback

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

func imageItem(name string, duration *int) v1alpha1.MediaItem {
	return v1alpha1.MediaItem{
		ID:       uuid.New(),
		Name:     name,
		Kind:     v1alpha1.MediaKindImage,
		Content:  "file:///media/" + name + ".jpg",
		Duration: duration,
	}
}

func videoItem(name string) v1alpha1.MediaItem {
	return v1alpha1.MediaItem{
		ID:      uuid.New(),
		Name:    name,
		Kind:    v1alpha1.MediaKindVideo,
		Content: "file:///media/" + name + ".mp4",
	}
}

func testCampaign(name string, schedule v1alpha1.Schedule, items ...v1alpha1.MediaItem) v1alpha1.Campaign {
	return v1alpha1.Campaign{
		ID:       uuid.New(),
		Name:     name,
		Items:    items,
		Schedule: schedule,
	}
}

// Monday 2024-06-03
func mondayAt(hour, minute int) time.Time {
	return time.Date(2024, 6, 3, hour, minute, 0, 0, time.UTC)
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name     string
		schedule v1alpha1.Schedule
		items    []v1alpha1.MediaItem
		now      time.Time
		want     bool
	}{
		{
			name:     "disabled schedule always eligible",
			schedule: v1alpha1.Schedule{Enabled: false, StartTime: "23:00", EndTime: "23:30"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(3, 0),
			want:     true,
		},
		{
			name:     "no media never eligible",
			schedule: v1alpha1.Schedule{Enabled: false},
			items:    nil,
			now:      mondayAt(12, 0),
			want:     false,
		},
		{
			name:     "inside window",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(12, 30),
			want:     true,
		},
		{
			name:     "window boundaries are inclusive",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(17, 0),
			want:     true,
		},
		{
			name:     "before window",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(8, 59),
			want:     false,
		},
		{
			name:     "after window",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(17, 1),
			want:     false,
		},
		{
			name: "day mismatch",
			schedule: v1alpha1.Schedule{
				Enabled: true, StartTime: "00:00", EndTime: "23:59",
				Days: []time.Weekday{time.Saturday, time.Sunday},
			},
			items: []v1alpha1.MediaItem{imageItem("a", nil)},
			now:   mondayAt(12, 0),
			want:  false,
		},
		{
			name: "day match",
			schedule: v1alpha1.Schedule{
				Enabled: true, StartTime: "00:00", EndTime: "23:59",
				Days: []time.Weekday{time.Monday},
			},
			items: []v1alpha1.MediaItem{imageItem("a", nil)},
			now:   mondayAt(12, 0),
			want:  true,
		},
		{
			name:     "empty day list means every day",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "00:00", EndTime: "23:59"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(12, 0),
			want:     true,
		},
		{
			name:     "equal start and end is a one-minute window",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "12:00", EndTime: "12:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(12, 0),
			want:     true,
		},
		{
			name:     "overnight window is never eligible",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "22:00", EndTime: "06:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(23, 0),
			want:     false,
		},
		{
			name:     "malformed start time is never eligible",
			schedule: v1alpha1.Schedule{Enabled: true, StartTime: "9am", EndTime: "17:00"},
			items:    []v1alpha1.MediaItem{imageItem("a", nil)},
			now:      mondayAt(12, 0),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCampaign("c", tt.schedule, tt.items...)
			assert.Equal(t, tt.want, IsEligible(c, tt.now))
		})
	}
}

func TestFilterEligiblePreservesOrder(t *testing.T) {
	always := v1alpha1.Schedule{Enabled: false}
	evening := v1alpha1.Schedule{Enabled: true, StartTime: "18:00", EndTime: "23:00"}

	first := testCampaign("first", always, imageItem("a", nil))
	closed := testCampaign("closed", evening, imageItem("b", nil))
	second := testCampaign("second", always, videoItem("c"))
	empty := testCampaign("empty", always)

	got := FilterEligible(
		[]v1alpha1.Campaign{first, closed, second, empty},
		mondayAt(12, 0),
	)

	assert.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
}

func TestFilterEligibleEmptyInput(t *testing.T) {
	assert.Empty(t, FilterEligible(nil, mondayAt(12, 0)))
}
