package campaign

import (
	"context"

	"github.com/google/uuid"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// Repository defines the interface for campaign persistence
type Repository interface {
	// Create stores a new campaign
	Create(ctx context.Context, c *v1alpha1.Campaign) error

	// Get retrieves a campaign by its unique identifier
	Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error)

	// List retrieves all campaigns in play order
	List(ctx context.Context) ([]v1alpha1.Campaign, error)

	// Save persists changes to an existing campaign, enforcing the
	// version for optimistic concurrency
	Save(ctx context.Context, c *v1alpha1.Campaign) error

	// Delete removes a campaign from storage
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the interface for campaign business operations
type Service interface {
	// Create validates and stores a new campaign
	Create(ctx context.Context, c *v1alpha1.Campaign) error

	// Get retrieves a campaign by ID
	Get(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error)

	// List retrieves all campaigns in play order
	List(ctx context.Context) ([]v1alpha1.Campaign, error)

	// Update applies a partial update to a campaign
	Update(ctx context.Context, id uuid.UUID, update *v1alpha1.CampaignUpdate) (*v1alpha1.Campaign, error)

	// Delete removes a campaign
	Delete(ctx context.Context, id uuid.UUID) error
}
