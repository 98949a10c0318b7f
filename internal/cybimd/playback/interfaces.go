package playback

import (
	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// Renderer drives the device's actual media outputs: two video
// buffers and one image surface. Calls must not block; load and play
// outcomes arrive asynchronously through the engine's Handle methods.
//
// LoadVideo binds a source muted and begins decoding; the renderer
// reports readiness with a VIDEO_READY event. SetMuted is the one call
// that reports an immediate outcome, because platform autoplay policy
// can refuse audio and the engine must know to stay muted.
type Renderer interface {
	// ShowImage makes the image surface visible with the given media
	ShowImage(item v1alpha1.MediaItem, transition v1alpha1.Transition, transitionMs int)
	// HideImage hides the image surface
	HideImage()
	// LoadVideo binds a source to a buffer, muted, and starts loading
	LoadVideo(id BufferID, item v1alpha1.MediaItem)
	// PlayVideo starts playback on a loaded buffer
	PlayVideo(id BufferID)
	// SetMuted changes a buffer's audio state; an error means the
	// platform refused (autoplay policy) and the buffer stays muted
	SetMuted(id BufferID, muted bool) error
	// RestartVideo seeks a playing buffer back to position zero
	RestartVideo(id BufferID)
	// ShowVideo makes a buffer visible. Never animated: a transition
	// here would flash a black frame while the decoder warms up.
	ShowVideo(id BufferID)
	// HideVideo hides a buffer without releasing its source
	HideVideo(id BufferID)
	// ReleaseVideo detaches a buffer's source, freeing decode resources
	ReleaseVideo(id BufferID)
}

// EventPublisher delivers player events to host listeners. Publish is
// called from within the engine and must not block.
type EventPublisher interface {
	Publish(event v1alpha1.PlayerEvent)
}

// EventSink receives media and input events on behalf of the engine.
// The renderer transport dispatches into this.
type EventSink interface {
	// HandleVideoReady reports a buffer finished loading
	HandleVideoReady(id BufferID)
	// HandleVideoEnded reports the buffer's video completed
	HandleVideoEnded(id BufferID)
	// HandleVideoError reports a load or decode failure
	HandleVideoError(id BufferID, cause error)
	// HandleTap reports a touch on the play surface
	HandleTap()
	// HandleBack reports the designated back key
	HandleBack()
}
