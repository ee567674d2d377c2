package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Webhooks lists one page of a workspace's webhooks.
func (c *Client) Webhooks(ctx context.Context, workspaceID string, q PageQuery) (*WebhookList, error) {
	var out WebhookList
	path := pathf("/workspace-webhooks/%s", workspaceID) + q.encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateWebhook creates a webhook in a workspace.
func (c *Client) CreateWebhook(ctx context.Context, workspaceID string, w Webhook) (*Webhook, error) {
	var out Webhook
	if err := c.do(ctx, http.MethodPost, pathf("/workspace-webhooks/%s", workspaceID), w, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Webhook fetches one webhook.
func (c *Client) Webhook(ctx context.Context, id string) (*Webhook, error) {
	var out Webhook
	if err := c.do(ctx, http.MethodGet, pathf("/webhooks/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWebhook replaces a webhook's settings.
func (c *Client) UpdateWebhook(ctx context.Context, id string, w Webhook) error {
	return c.do(ctx, http.MethodPut, pathf("/webhooks/%s", id), w, nil)
}

// DeleteWebhook deletes a webhook and its captured calls.
func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf("/webhooks/%s", id), nil, nil)
}

// WebhookRequests lists one page of calls captured by a webhook, newest
// first.
func (c *Client) WebhookRequests(ctx context.Context, id string, q PageQuery) (*WebhookRequestList, error) {
	var out WebhookRequestList
	path := pathf("/webhooks/%s/requests", id) + q.encode()
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (q PageQuery) encode() string {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
