package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Load(ctx context.Context) (v1alpha1.PlaybackSettings, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(v1alpha1.PlaybackSettings), args.Bool(1), args.Error(2)
}

func (m *mockRepository) Save(ctx context.Context, s v1alpha1.PlaybackSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestService_GetFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepository)
	repo.On("Load", ctx).Return(v1alpha1.PlaybackSettings{}, false, nil)

	service := NewService(repo)
	got, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, v1alpha1.DefaultPlaybackSettings(), got)
}

func TestService_GetReturnsStored(t *testing.T) {
	ctx := context.Background()

	stored := v1alpha1.DefaultPlaybackSettings()
	stored.Orientation = v1alpha1.OrientationPortrait
	stored.DefaultImageDuration = 15

	repo := new(mockRepository)
	repo.On("Load", ctx).Return(stored, true, nil)

	service := NewService(repo)
	got, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestService_SetValidates(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	service := NewService(repo)

	bad := v1alpha1.DefaultPlaybackSettings()
	bad.Transition = "wipe"
	assert.Error(t, service.Set(ctx, bad))

	bad = v1alpha1.DefaultPlaybackSettings()
	bad.DefaultImageDuration = 0
	assert.Error(t, service.Set(ctx, bad))

	repo.AssertNotCalled(t, "Save")
}

func TestService_Set(t *testing.T) {
	ctx := context.Background()

	s := v1alpha1.DefaultPlaybackSettings()
	s.Transition = v1alpha1.TransitionZoom

	repo := new(mockRepository)
	repo.On("Save", ctx, s).Return(nil)

	service := NewService(repo)
	require.NoError(t, service.Set(ctx, s))
	repo.AssertExpectations(t)
}
