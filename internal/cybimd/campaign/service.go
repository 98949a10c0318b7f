// Package campaign implements campaign management for the signage
// daemon. The playback core reads campaigns; this service owns their
// lifecycle.
package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

type campaignService struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a campaign service backed by the given repository
func NewService(repo Repository) Service {
	return &campaignService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *campaignService) Create(ctx context.Context, c *v1alpha1.Campaign) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	for i := range c.Items {
		if c.Items[i].ID == uuid.Nil {
			c.Items[i].ID = uuid.New()
		}
	}
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	c.Version = 1

	return s.repo.Create(ctx, c)
}

func (s *campaignService) Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error) {
	return s.repo.Get(ctx, id)
}

func (s *campaignService) List(ctx context.Context) ([]v1alpha1.Campaign, error) {
	return s.repo.List(ctx)
}

func (s *campaignService) Update(ctx context.Context, id uuid.UUID, update *v1alpha1.CampaignUpdate) (*v1alpha1.Campaign, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.Items != nil {
		c.Items = update.Items
		for i := range c.Items {
			if c.Items[i].ID == uuid.Nil {
				c.Items[i].ID = uuid.New()
			}
		}
	}
	if update.Schedule != nil {
		c.Schedule = *update.Schedule
	}
	if update.Loop != nil {
		c.Loop = *update.Loop
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.UpdatedAt = s.now()

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *campaignService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
