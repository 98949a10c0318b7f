package client

import (
	"context"
	"net/http"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
)

// StartPlayer starts a playback session from the stored campaigns
func (c *Client) StartPlayer(ctx context.Context) (*v1alpha1.PlayerStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/player/start", nil)
	if err != nil {
		return nil, err
	}

	var status v1alpha1.PlayerStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// StopPlayer ends the running playback session
func (c *Client) StopPlayer(ctx context.Context) (*v1alpha1.PlayerStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/player/stop", nil)
	if err != nil {
		return nil, err
	}

	var status v1alpha1.PlayerStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// PlayerStatus retrieves a snapshot of the playback engine
func (c *Client) PlayerStatus(ctx context.Context) (*v1alpha1.PlayerStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/player/status", nil)
	if err != nil {
		return nil, err
	}

	var status v1alpha1.PlayerStatus
	if err := decodeResponse(resp, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
