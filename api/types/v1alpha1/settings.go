package v1alpha1

import "fmt"

// Orientation describes how the display panel is mounted
type Orientation string

const (
	OrientationLandscape         Orientation = "landscape"
	OrientationLandscapeInverted Orientation = "landscape-inverted"
	OrientationPortrait          Orientation = "portrait"
	OrientationPortraitInverted  Orientation = "portrait-inverted"
)

// Transition is the cosmetic effect applied when media changes
type Transition string

const (
	TransitionNone  Transition = "none"
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionZoom  Transition = "zoom"
)

// PlaybackSettings holds device-wide playback configuration.
// The playback core reads these; the settings service owns them.
type PlaybackSettings struct {
	// Orientation rotates the rendered output
	Orientation Orientation `json:"orientation"`
	// Transition is the effect between media items
	Transition Transition `json:"transition"`
	// TransitionDurationMs is how long the transition effect runs
	TransitionDurationMs int `json:"transitionDurationMs"`
	// DefaultImageDuration is how long images without their own
	// duration stay on screen, in seconds
	DefaultImageDuration int `json:"defaultImageDuration"`
	// AutoStart begins playback as soon as the daemon is ready
	AutoStart bool `json:"autoStart"`
}

// DefaultPlaybackSettings returns the settings used before any have
// been stored
func DefaultPlaybackSettings() PlaybackSettings {
	return PlaybackSettings{
		Orientation:          OrientationLandscape,
		Transition:           TransitionFade,
		TransitionDurationMs: 500,
		DefaultImageDuration: 10,
	}
}

// Validate checks the PlaybackSettings for validity
func (s *PlaybackSettings) Validate() error {
	switch s.Orientation {
	case OrientationLandscape, OrientationLandscapeInverted, OrientationPortrait, OrientationPortraitInverted:
	default:
		return &Error{Code: "InvalidSettings", Message: fmt.Sprintf("unknown orientation %q", s.Orientation)}
	}
	switch s.Transition {
	case TransitionNone, TransitionFade, TransitionSlide, TransitionZoom:
	default:
		return &Error{Code: "InvalidSettings", Message: fmt.Sprintf("unknown transition %q", s.Transition)}
	}
	if s.TransitionDurationMs < 0 {
		return &Error{Code: "InvalidSettings", Message: "transition duration cannot be negative"}
	}
	if s.DefaultImageDuration < 1 {
		return &Error{Code: "InvalidSettings", Message: "default image duration must be at least 1 second"}
	}
	return nil
}
