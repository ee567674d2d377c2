package api

import (
	"context"
	"net/http"
)

// Requests lists the saved requests of a collection.
func (c *Client) Requests(ctx context.Context, collectionID string) ([]Request, error) {
	var out []Request
	if err := c.do(ctx, http.MethodGet, pathf("/collection-requests/%s", collectionID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRequest saves a request in a collection.
func (c *Client) CreateRequest(ctx context.Context, collectionID string, r Request) (*Request, error) {
	var out Request
	if err := c.do(ctx, http.MethodPost, pathf("/collection-requests/%s", collectionID), r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Request fetches one saved request.
func (c *Client) Request(ctx context.Context, id string) (*Request, error) {
	var out Request
	if err := c.do(ctx, http.MethodGet, pathf("/requests/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRequest replaces a saved request.
func (c *Client) UpdateRequest(ctx context.Context, id string, r Request) error {
	return c.do(ctx, http.MethodPut, pathf("/requests/%s", id), r, nil)
}

// DeleteRequest deletes a saved request.
func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf("/requests/%s", id), nil, nil)
}

// ExecuteRequest has the backend run a saved request.
func (c *Client) ExecuteRequest(ctx context.Context, id string) (*ExecuteResult, error) {
	var out ExecuteResult
	if err := c.do(ctx, http.MethodPost, pathf("/requests/%s/execute", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExecuteRaw has the backend run r without saving it.
func (c *Client) ExecuteRaw(ctx context.Context, r Request) (*ExecuteResult, error) {
	var out ExecuteResult
	if err := c.do(ctx, http.MethodPost, "/execute-request", r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
