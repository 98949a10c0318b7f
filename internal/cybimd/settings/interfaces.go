package settings

import (
	"context"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// Repository defines the interface for settings persistence. The store
// holds at most one record; Load reports found=false until the first
// Save.
type Repository interface {
	// Load retrieves the stored settings
	Load(ctx context.Context) (s v1alpha1.PlaybackSettings, found bool, err error)

	// Save stores the settings, replacing any previous record
	Save(ctx context.Context, s v1alpha1.PlaybackSettings) error
}

// Service defines the interface for settings operations
type Service interface {
	// Get returns the device settings, falling back to defaults when
	// none have been stored yet
	Get(ctx context.Context) (v1alpha1.PlaybackSettings, error)

	// Set validates and stores the device settings
	Set(ctx context.Context, s v1alpha1.PlaybackSettings) error
}
