package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// CreateCampaign stores a new campaign and returns it with its
// server-assigned identifiers
func (c *Client) CreateCampaign(ctx context.Context, campaign *v1alpha1.Campaign) (*v1alpha1.Campaign, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/campaigns", campaign)
	if err != nil {
		return nil, err
	}

	var created v1alpha1.Campaign
	if err := decodeResponse(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCampaign retrieves a campaign by ID
func (c *Client) GetCampaign(ctx context.Context, id uuid.UUID) (*v1alpha1.Campaign, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/campaigns/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	var campaign v1alpha1.Campaign
	if err := decodeResponse(resp, &campaign); err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListCampaigns retrieves all campaigns in play order
func (c *Client) ListCampaigns(ctx context.Context) ([]v1alpha1.Campaign, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/campaigns", nil)
	if err != nil {
		return nil, err
	}

	var list v1alpha1.CampaignList
	if err := decodeResponse(resp, &list); err != nil {
		return nil, err
	}
	return list.Items, nil
}

// UpdateCampaign applies a partial update to a campaign
func (c *Client) UpdateCampaign(ctx context.Context, id uuid.UUID, update *v1alpha1.CampaignUpdate) (*v1alpha1.Campaign, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, "/campaigns/"+id.String(), update)
	if err != nil {
		return nil, err
	}

	var updated v1alpha1.Campaign
	if err := decodeResponse(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCampaign removes a campaign
func (c *Client) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/campaigns/"+id.String(), nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
