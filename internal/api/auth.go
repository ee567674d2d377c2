package api

import (
	"context"
	"net/http"

	"github.com/roach88/volt/internal/model"
)

// Register creates an account and starts a session.
func (c *Client) Register(ctx context.Context, r Registration) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login starts a session. The session cookie lands in the client's jar.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/auth/logout", nil, nil)
}

// Me returns the user behind the current session.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out struct {
		User model.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
