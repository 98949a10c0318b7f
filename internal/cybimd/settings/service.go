// Package settings manages the device-wide playback settings record
package settings

import (
	"context"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

type settingsService struct {
	repo Repository
}

// NewService creates a settings service backed by the given repository
func NewService(repo Repository) Service {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (v1alpha1.PlaybackSettings, error) {
	stored, found, err := s.repo.Load(ctx)
	if err != nil {
		return v1alpha1.PlaybackSettings{}, err
	}
	if !found {
		return v1alpha1.DefaultPlaybackSettings(), nil
	}
	return stored, nil
}

func (s *settingsService) Set(ctx context.Context, settings v1alpha1.PlaybackSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.repo.Save(ctx, settings)
}
