package playback

import "errors"

var (
	// ErrNoEligibleContent indicates no campaign passed schedule
	// evaluation at start time; playback was not entered
	ErrNoEligibleContent = errors.New("no eligible content")

	// ErrEmptyPlaylist indicates the sequencer was given an empty
	// eligibility snapshot
	ErrEmptyPlaylist = errors.New("empty playlist")
)
