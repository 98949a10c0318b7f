package client

import (
	"context"
	"net/http"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// GetSettings retrieves the device playback settings
func (c *Client) GetSettings(ctx context.Context) (*v1alpha1.PlaybackSettings, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/settings", nil)
	if err != nil {
		return nil, err
	}

	var s v1alpha1.PlaybackSettings
	if err := decodeResponse(resp, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetSettings replaces the device playback settings
func (c *Client) SetSettings(ctx context.Context, s *v1alpha1.PlaybackSettings) error {
	resp, err := c.doRequest(ctx, http.MethodPut, "/settings", s)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}
