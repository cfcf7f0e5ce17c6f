package service

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/webtop-os/backend/internal/shared/types"
)

// unreachableMessage mirrors the login form's generic failure text when
// the service cannot be reached at all.
const unreachableMessage = "Erreur de connexion au serveur"

// AuthError is the single failure kind surfaced to the login form. Bad
// credentials and an unreachable server both land here; Message is the
// human-readable reason shown to the user.
type AuthError struct {
	Message string
	cause   error
}

func (e *AuthError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("authentication failed: %s: %v", e.Message, e.cause)
	}
	return fmt.Sprintf("authentication failed: %s", e.Message)
}

func (e *AuthError) Unwrap() error { return e.cause }

// AuthClient verifies credentials against the simulation API
type AuthClient struct {
	http *resty.Client
}

// NewAuthClient creates an auth client for the given API base URL
func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{http: newRestyClient(baseURL)}
}

// Authenticate posts credentials and returns the identity snapshot on
// success. All failures come back as *AuthError.
func (c *AuthClient) Authenticate(ctx context.Context, username, password string) (*types.User, error) {
	var out types.LoginResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(types.LoginRequest{Username: username, Password: password}).
		SetResult(&out).
		SetError(&out).
		Post("/api/auth/login")
	if err != nil {
		return nil, &AuthError{Message: unreachableMessage, cause: err}
	}
	if resp.IsError() && out.Message == "" {
		return nil, &AuthError{Message: unreachableMessage, cause: fmt.Errorf("status %d", resp.StatusCode())}
	}

	if !out.Success || out.User == nil {
		return nil, &AuthError{Message: out.Message}
	}
	return out.User, nil
}
