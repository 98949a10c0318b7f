// Package v1alpha1 contains API types for the CYBIM signage player.
package v1alpha1

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaKind identifies what sort of media an item holds
type MediaKind string

const (
	// MediaKindImage is a still image shown for a fixed duration
	MediaKindImage MediaKind = "image"
	// MediaKindVideo is a video played to completion
	MediaKindVideo MediaKind = "video"
)

// MediaItem is a single image or video inside a campaign
type MediaItem struct {
	// ID is the unique identifier for this item
	ID uuid.UUID `json:"id"`
	// Name is a human-readable label
	Name string `json:"name"`
	// Kind identifies whether this is an image or a video
	Kind MediaKind `json:"kind"`
	// Content is the URI the renderer loads the media from
	Content string `json:"content"`
	// Duration overrides the default image display time in seconds.
	// Ignored for videos, which play to completion.
	Duration *int `json:"duration,omitempty"`
}

// Validate checks the MediaItem for validity
func (m *MediaItem) Validate() error {
	if m.Name == "" {
		return &Error{Code: "InvalidMedia", Message: "media item name is required"}
	}
	if m.Kind != MediaKindImage && m.Kind != MediaKindVideo {
		return &Error{Code: "InvalidMedia", Message: fmt.Sprintf("unknown media kind %q", m.Kind)}
	}
	if m.Content == "" {
		return &Error{Code: "InvalidMedia", Message: "media content URI is required"}
	}
	if m.Duration != nil && *m.Duration <= 0 {
		return &Error{Code: "InvalidMedia", Message: "image duration must be positive"}
	}
	return nil
}

// Schedule restricts when a campaign is allowed to play
type Schedule struct {
	// Enabled turns scheduling on; a disabled schedule means always play
	Enabled bool `json:"enabled"`
	// StartTime is the start of the daily window ("HH:MM")
	StartTime string `json:"startTime"`
	// EndTime is the end of the daily window ("HH:MM", inclusive)
	EndTime string `json:"endTime"`
	// Days restricts which weekdays the window applies to.
	// An empty list means every day.
	Days []time.Weekday `json:"days,omitempty"`
}

// Validate checks the Schedule for validity
func (s *Schedule) Validate() error {
	if !s.Enabled {
		return nil
	}
	if _, err := ParseClock(s.StartTime); err != nil {
		return &Error{Code: "InvalidSchedule", Message: fmt.Sprintf("invalid start time: %v", err)}
	}
	if _, err := ParseClock(s.EndTime); err != nil {
		return &Error{Code: "InvalidSchedule", Message: fmt.Sprintf("invalid end time: %v", err)}
	}
	for _, d := range s.Days {
		if d < time.Sunday || d > time.Saturday {
			return &Error{Code: "InvalidSchedule", Message: fmt.Sprintf("invalid weekday %d", d)}
		}
	}
	return nil
}

// ParseClock converts an "HH:MM" string to minutes since midnight
func ParseClock(v string) (int, error) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return h*60 + m, nil
}

// Campaign is a named, ordered collection of media items with an
// optional day/time schedule
type Campaign struct {
	// ID is the unique identifier for this campaign
	ID uuid.UUID `json:"id"`
	// Name is a human-readable identifier
	Name string `json:"name"`
	// Items holds the campaign's media in play order
	Items []MediaItem `json:"items"`
	// Schedule optionally restricts when the campaign plays
	Schedule Schedule `json:"schedule"`
	// Loop restarts the campaign in place when it is the only
	// eligible campaign, instead of re-entering the rotation
	Loop bool `json:"loop"`
	// CreatedAt is when the campaign was first stored
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the campaign was last modified
	UpdatedAt time.Time `json:"updatedAt"`
	// Version tracks optimistic concurrency control
	Version int `json:"version"`
}

// Validate checks the Campaign for validity
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return &Error{Code: "InvalidCampaign", Message: "campaign name is required"}
	}
	for i := range c.Items {
		if err := c.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return c.Schedule.Validate()
}

// CampaignUpdate represents a partial update to a campaign
type CampaignUpdate struct {
	// Name updates the campaign name
	Name *string `json:"name,omitempty"`
	// Items replaces the media list (order-significant)
	Items []MediaItem `json:"items,omitempty"`
	// Schedule replaces the schedule
	Schedule *Schedule `json:"schedule,omitempty"`
	// Loop updates the single-campaign loop flag
	Loop *bool `json:"loop,omitempty"`
}

// CampaignList is a list of campaigns
type CampaignList struct {
	// Items is the list of Campaign objects
	Items []Campaign `json:"items"`
}

// Error is an API-level error with a machine-readable code
type Error struct {
	// Code is a machine-readable error code
	Code string `json:"code"`
	// Message is a human-readable description
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}
