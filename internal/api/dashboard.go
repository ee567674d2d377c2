package api

import (
	"context"
	"net/http"
)

// DashboardStats returns the user's totals.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// APIHealth returns the backend health report.
func (c *Client) APIHealth(ctx context.Context) (*APIHealth, error) {
	var out APIHealth
	if err := c.do(ctx, http.MethodGet, "/dashboard/api-health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activity returns the dashboard activity feed.
func (c *Client) Activity(ctx context.Context) (*ActivityFeed, error) {
	var out ActivityFeed
	if err := c.do(ctx, http.MethodGet, "/dashboard/activity", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Team returns the dashboard team panel.
func (c *Client) Team(ctx context.Context) (*TeamSummary, error) {
	var out TeamSummary
	if err := c.do(ctx, http.MethodGet, "/dashboard/team", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notifications returns the inbox.
func (c *Client) Notifications(ctx context.Context) (*NotificationList, error) {
	var out NotificationList
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, pathf("/notifications/%s/read", id), nil, nil)
}

// MarkAllNotificationsRead clears the unread count.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/notifications/read-all", nil, nil)
}
