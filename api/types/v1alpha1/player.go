package v1alpha1

import (
	"time"

	"github.com/google/uuid"
)

// PlayerState represents the playback engine's lifecycle state
type PlayerState string

const (
	// PlayerStopped indicates no playback session is running
	PlayerStopped PlayerState = "STOPPED"
	// PlayerPlaying indicates an active playback session
	PlayerPlaying PlayerState = "PLAYING"
)

// PlayerStatus is a point-in-time snapshot of the playback engine
type PlayerStatus struct {
	// State is the engine's lifecycle state
	State PlayerState `json:"state"`
	// CampaignID identifies the campaign currently showing
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	// CampaignName is the showing campaign's name
	CampaignName string `json:"campaignName,omitempty"`
	// ItemID identifies the media item currently showing
	ItemID *uuid.UUID `json:"itemId,omitempty"`
	// ItemName is the showing item's name
	ItemName string `json:"itemName,omitempty"`
	// ItemKind is the showing item's media kind
	ItemKind MediaKind `json:"itemKind,omitempty"`
	// ActiveBuffer names the visible video buffer ("A" or "B")
	ActiveBuffer string `json:"activeBuffer,omitempty"`
	// StartedAt is when the current session began
	StartedAt *time.Time `json:"startedAt,omitempty"`
}

// PlayerEventType identifies the kind of player event
type PlayerEventType string

const (
	// EventPlaybackStarted indicates a new playback session began
	EventPlaybackStarted PlayerEventType = "PLAYBACK_STARTED"
	// EventPlaybackStopped indicates the session ended
	EventPlaybackStopped PlayerEventType = "PLAYBACK_STOPPED"
	// EventNowPlaying indicates a new media item became current
	EventNowPlaying PlayerEventType = "NOW_PLAYING"
	// EventMediaError indicates a media item failed and was skipped
	EventMediaError PlayerEventType = "MEDIA_ERROR"
	// EventExitRequested indicates the exit gate fired; the host
	// should navigate away from the play surface
	EventExitRequested PlayerEventType = "EXIT_REQUESTED"
)

// PlayerEvent is delivered to host listeners as playback progresses
type PlayerEvent struct {
	// Type indicates what happened
	Type PlayerEventType `json:"type"`
	// Timestamp records when the event occurred
	Timestamp time.Time `json:"timestamp"`
	// CampaignID identifies the campaign involved, if any
	CampaignID *uuid.UUID `json:"campaignId,omitempty"`
	// ItemID identifies the media item involved, if any
	ItemID *uuid.UUID `json:"itemId,omitempty"`
	// Error carries the failure description for MEDIA_ERROR events
	Error string `json:"error,omitempty"`
}

// RenderCommandType identifies a command sent to the renderer
type RenderCommandType string

const (
	RenderShowImage    RenderCommandType = "SHOW_IMAGE"
	RenderHideImage    RenderCommandType = "HIDE_IMAGE"
	RenderLoadVideo    RenderCommandType = "LOAD_VIDEO"
	RenderPlayVideo    RenderCommandType = "PLAY_VIDEO"
	RenderSetMuted     RenderCommandType = "SET_MUTED"
	RenderRestartVideo RenderCommandType = "RESTART_VIDEO"
	RenderShowVideo    RenderCommandType = "SHOW_VIDEO"
	RenderHideVideo    RenderCommandType = "HIDE_VIDEO"
	RenderReleaseVideo RenderCommandType = "RELEASE_VIDEO"
)

// RenderCommand instructs the on-device renderer to change an output.
// Video commands address one of the two buffers by name.
type RenderCommand struct {
	// Type is the command discriminator
	Type RenderCommandType `json:"type"`
	// Buffer addresses video buffer "A" or "B"
	Buffer string `json:"buffer,omitempty"`
	// Item carries the media for SHOW_IMAGE and LOAD_VIDEO
	Item *MediaItem `json:"item,omitempty"`
	// Transition carries the effect for SHOW_IMAGE
	Transition Transition `json:"transition,omitempty"`
	// TransitionDurationMs is how long the transition runs
	TransitionDurationMs int `json:"transitionDurationMs,omitempty"`
	// Muted carries the target state for SET_MUTED
	Muted bool `json:"muted,omitempty"`
}

// RenderEventType identifies an event reported by the renderer
type RenderEventType string

const (
	// RenderVideoReady means a buffer finished loading and can play
	RenderVideoReady RenderEventType = "VIDEO_READY"
	// RenderVideoEnded means the buffer's video played to completion
	RenderVideoEnded RenderEventType = "VIDEO_ENDED"
	// RenderVideoError means the buffer's video failed to load or decode
	RenderVideoError RenderEventType = "VIDEO_ERROR"
	// RenderTap is a touch on the play surface
	RenderTap RenderEventType = "TAP"
	// RenderBack is the designated back key
	RenderBack RenderEventType = "BACK"
)

// RenderEvent is reported by the renderer back to the daemon
type RenderEvent struct {
	// Type is the event discriminator
	Type RenderEventType `json:"type"`
	// Buffer names the video buffer the event concerns
	Buffer string `json:"buffer,omitempty"`
	// Error describes a VIDEO_ERROR failure
	Error string `json:"error,omitempty"`
}
