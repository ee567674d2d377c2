package api

import (
	"context"
	"net/http"
)

// Environments lists the environments of a workspace.
func (c *Client) Environments(ctx context.Context, workspaceID string) ([]Environment, error) {
	var out []Environment
	if err := c.do(ctx, http.MethodGet, pathf("/workspace-environments/%s", workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEnvironment creates an environment in a workspace.
func (c *Client) CreateEnvironment(ctx context.Context, workspaceID string, e Environment) (*Environment, error) {
	var out Environment
	if err := c.do(ctx, http.MethodPost, pathf("/workspace-environments/%s", workspaceID), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Environment fetches one environment.
func (c *Client) Environment(ctx context.Context, id string) (*Environment, error) {
	var out Environment
	if err := c.do(ctx, http.MethodGet, pathf("/environments/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEnvironment replaces an environment and returns the stored copy.
func (c *Client) UpdateEnvironment(ctx context.Context, id string, e Environment) (*Environment, error) {
	var out Environment
	if err := c.do(ctx, http.MethodPut, pathf("/environments/%s", id), e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEnvironment deletes an environment.
func (c *Client) DeleteEnvironment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf("/environments/%s", id), nil, nil)
}
