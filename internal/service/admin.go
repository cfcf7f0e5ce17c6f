package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/webtop-os/backend/internal/shared/types"
)

// apiError is the {"error": "..."} shape the simulation API returns on
// rejected admin operations.
type apiError struct {
	Error string `json:"error"`
}

// AdminClient drives the user and log management endpoints. Only the
// admin-panel renderer consumes it; failures surface as error toasts,
// never as hard faults.
type AdminClient struct {
	http *resty.Client
}

// NewAdminClient creates an admin client for the given API base URL
func NewAdminClient(baseURL string) *AdminClient {
	return &AdminClient{http: newRestyClient(baseURL)}
}

// ListUsers returns all managed accounts
func (c *AdminClient) ListUsers(ctx context.Context) ([]types.User, error) {
	var out []types.User
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/api/users")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(resp, "list users")
	}
	return out, nil
}

// CreateUser creates a managed account
func (c *AdminClient) CreateUser(ctx context.Context, req types.UserUpsertRequest) (*types.User, error) {
	var out types.User
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetResult(&out).SetError(&apiError{}).Post("/api/users")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(resp, "create user")
	}
	return &out, nil
}

// UpdateUser rewrites username, password and role of an account
func (c *AdminClient) UpdateUser(ctx context.Context, userID string, req types.UserUpsertRequest) error {
	resp, err := c.http.R().SetContext(ctx).SetBody(req).SetError(&apiError{}).Put("/api/users/" + userID)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return statusError(resp, "update user")
	}
	return nil
}

// DeleteUser removes an account. The API refuses to delete SuperAdmin.
func (c *AdminClient) DeleteUser(ctx context.Context, userID string) error {
	resp, err := c.http.R().SetContext(ctx).SetError(&apiError{}).Delete("/api/users/" + userID)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return statusError(resp, "delete user")
	}
	return nil
}

// Logs returns recorded login attempts, newest first
func (c *AdminClient) Logs(ctx context.Context) ([]types.LoginLog, error) {
	var out []types.LoginLog
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/api/logs")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, statusError(resp, "fetch logs")
	}
	return out, nil
}

// ClearLogs empties the login log
func (c *AdminClient) ClearLogs(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/logs")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return statusError(resp, "clear logs")
	}
	return nil
}

// statusError extracts the API's error message when present
func statusError(resp *resty.Response, op string) error {
	if apiErr, ok := resp.Error().(*apiError); ok && apiErr != nil && apiErr.Error != "" {
		return fmt.Errorf("%s: %s", op, apiErr.Error)
	}
	return fmt.Errorf("%s: status %d", op, resp.StatusCode())
}
