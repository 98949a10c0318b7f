package campaign

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *v1alpha1.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*v1alpha1.Campaign), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context) ([]v1alpha1.Campaign, error) {
	args := m.Called(ctx)
	return args.Get(0).([]v1alpha1.Campaign), args.Error(1)
}

func (m *mockRepository) Save(ctx context.Context, c *v1alpha1.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func validCampaign() *v1alpha1.Campaign {
	return &v1alpha1.Campaign{
		Name: "lobby",
		Items: []v1alpha1.MediaItem{
			{
				Name:    "welcome",
				Kind:    v1alpha1.MediaKindImage,
				Content: "file:///media/welcome.jpg",
			},
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	repo := new(mockRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*v1alpha1.Campaign")).Return(nil)

	service := NewService(repo)
	c := validCampaign()
	require.NoError(t, service.Create(ctx, c))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.NotEqual(t, uuid.Nil, c.Items[0].ID)
	assert.Equal(t, 1, c.Version)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestService_CreateInvalid(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)
	service := NewService(repo)

	c := validCampaign()
	c.Name = ""
	assert.Error(t, service.Create(ctx, c))

	c = validCampaign()
	c.Items[0].Kind = "audio"
	assert.Error(t, service.Create(ctx, c))

	c = validCampaign()
	c.Schedule = v1alpha1.Schedule{Enabled: true, StartTime: "25:00", EndTime: "17:00"}
	assert.Error(t, service.Create(ctx, c))

	repo.AssertNotCalled(t, "Create")
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	existing := validCampaign()
	existing.ID = id
	existing.Version = 2

	repo := new(mockRepository)
	repo.On("Get", ctx, id).Return(existing, nil)
	repo.On("Save", ctx, mock.AnythingOfType("*v1alpha1.Campaign")).Return(nil)

	name := "entrance"
	loop := true
	service := NewService(repo)
	updated, err := service.Update(ctx, id, &v1alpha1.CampaignUpdate{
		Name: &name,
		Loop: &loop,
	})
	require.NoError(t, err)

	assert.Equal(t, "entrance", updated.Name)
	assert.True(t, updated.Loop)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestService_UpdateRejectsInvalidPatch(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	existing := validCampaign()
	existing.ID = id

	repo := new(mockRepository)
	repo.On("Get", ctx, id).Return(existing, nil)

	service := NewService(repo)
	_, err := service.Update(ctx, id, &v1alpha1.CampaignUpdate{
		Schedule: &v1alpha1.Schedule{Enabled: true, StartTime: "bad", EndTime: "17:00"},
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Save")
}
