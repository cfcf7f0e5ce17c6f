package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/webtop-os/backend/internal/shared/types"
)

// BroadcastClient talks to the broadcast endpoints of the simulation API
type BroadcastClient struct {
	http *resty.Client
}

// NewBroadcastClient creates a broadcast client for the given API base URL
func NewBroadcastClient(baseURL string) *BroadcastClient {
	return &BroadcastClient{http: newRestyClient(baseURL)}
}

// Active fetches the currently active broadcast, or nil when none exists
func (c *BroadcastClient) Active(ctx context.Context) (*types.Broadcast, error) {
	var out types.Broadcast

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/broadcast/active")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == 404 || len(resp.Body()) == 0 {
		return nil, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("broadcast poll: status %d", resp.StatusCode())
	}
	if out.ID == "" {
		// The API answers null when nothing is active
		return nil, nil
	}
	return &out, nil
}

// Acknowledge dismisses a broadcast remotely. Best-effort; callers clear
// local state regardless of the outcome.
func (c *BroadcastClient) Acknowledge(ctx context.Context, broadcastID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/broadcast/" + broadcastID)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("broadcast acknowledge: status %d", resp.StatusCode())
	}
	return nil
}

// Create issues a new broadcast, deactivating any prior one server-side
func (c *BroadcastClient) Create(ctx context.Context, title, message, createdBy string) (*types.Broadcast, error) {
	var out types.Broadcast

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(types.BroadcastCreateRequest{Title: title, Message: message, CreatedBy: createdBy}).
		SetResult(&out).
		Post("/api/broadcast")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("broadcast create: status %d", resp.StatusCode())
	}
	return &out, nil
}
