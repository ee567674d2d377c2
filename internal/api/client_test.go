package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a fake backend that records the last call and replies with a
// canned status and body.
type recorder struct {
	mu     sync.Mutex
	method string
	path   string
	query  string
	body   string
	ctype  string
	status int
	reply  string
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	b, _ := io.ReadAll(req.Body)
	r.mu.Lock()
	r.method = req.Method
	r.path = req.URL.EscapedPath()
	r.query = req.URL.RawQuery
	r.body = string(b)
	r.ctype = req.Header.Get("Content-Type")
	status, reply := r.status, r.reply
	r.mu.Unlock()

	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func newTestClient(t *testing.T, h http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{BaseURL: srv.URL, Timeout: 5 * time.Second}, opts...)
	require.NoError(t, err)
	return c
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"https", Config{BaseURL: "https://volt.example.com", Timeout: time.Second}, false},
		{"missing url", Config{Timeout: time.Second}, true},
		{"ftp scheme", Config{BaseURL: "ftp://volt.example.com", Timeout: time.Second}, true},
		{"no host", Config{BaseURL: "http://", Timeout: time.Second}, true},
		{"zero timeout", Config{BaseURL: DefaultBaseURL}, true},
		{"negative timeout", Config{BaseURL: DefaultBaseURL, Timeout: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url", Timeout: time.Second})
	assert.ErrorContains(t, err, "invalid api config")
}

func TestEndpoints_MethodPathAndBody(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(*Client) error
		method string
		path   string
		query  string
		body   string
		reply  string
	}{
		{
			name:   "login",
			call:   func(c *Client) error { _, err := c.Login(ctx, Credentials{Email: "a@b.c", Password: "pw"}); return err },
			method: http.MethodPost, path: "/api/auth/login",
			body:  `{"email":"a@b.c","password":"pw"}`,
			reply: `{"user":{"id":"u1"}}`,
		},
		{
			name:   "register",
			call:   func(c *Client) error { _, err := c.Register(ctx, Registration{Username: "ann", Email: "a@b.c", Password: "pw"}); return err },
			method: http.MethodPost, path: "/api/auth/register",
			body:  `{"username":"ann","email":"a@b.c","password":"pw"}`,
			reply: `{"user":{"id":"u1"}}`,
		},
		{
			name:   "logout",
			call:   func(c *Client) error { return c.Logout(ctx) },
			method: http.MethodDelete, path: "/api/auth/logout",
		},
		{
			name:   "workspace detail escapes id",
			call:   func(c *Client) error { _, err := c.Workspace(ctx, "a/b"); return err },
			method: http.MethodGet, path: "/api/workspace-detail/a%2Fb",
			reply: `{"id":"a/b"}`,
		},
		{
			name:   "update workspace",
			call:   func(c *Client) error { return c.UpdateWorkspace(ctx, "w1", NamedInput{Name: "New"}) },
			method: http.MethodPut, path: "/api/workspace-detail/w1",
			body: `{"name":"New"}`,
		},
		{
			name:   "delete workspace",
			call:   func(c *Client) error { return c.DeleteWorkspace(ctx, "w1") },
			method: http.MethodDelete, path: "/api/workspace-detail/w1",
		},
		{
			name:   "invite link",
			call:   func(c *Client) error { _, err := c.InviteLink(ctx, "w1", "editor"); return err },
			method: http.MethodPost, path: "/api/workspaces/w1/invite-link",
			body:  `{"role":"editor"}`,
			reply: `{"token":"tok"}`,
		},
		{
			name:   "accept invitation",
			call:   func(c *Client) error { _, err := c.AcceptInvitation(ctx, "tok"); return err },
			method: http.MethodPost, path: "/api/invitations/tok/accept",
			reply: `{"workspace":{"id":"w1"}}`,
		},
		{
			name:   "create collection",
			call:   func(c *Client) error { _, err := c.CreateCollection(ctx, "w1", NamedInput{Name: "Users", Description: "d"}); return err },
			method: http.MethodPost, path: "/api/workspace-collections/w1",
			body:  `{"name":"Users","description":"d"}`,
			reply: `{"id":"c1"}`,
		},
		{
			name:   "toggle favorite",
			call:   func(c *Client) error { _, err := c.ToggleFavorite(ctx, "c1"); return err },
			method: http.MethodPost, path: "/api/collections/c1/favorite",
			reply: `{"id":"c1"}`,
		},
		{
			name:   "delete collection",
			call:   func(c *Client) error { return c.DeleteCollection(ctx, "c1") },
			method: http.MethodDelete, path: "/api/collections/c1",
		},
		{
			name:   "list requests",
			call:   func(c *Client) error { _, err := c.Requests(ctx, "c1"); return err },
			method: http.MethodGet, path: "/api/collection-requests/c1",
			reply: `[]`,
		},
		{
			name:   "execute request",
			call:   func(c *Client) error { _, err := c.ExecuteRequest(ctx, "r1"); return err },
			method: http.MethodPost, path: "/api/requests/r1/execute",
			reply: `{"status":200}`,
		},
		{
			name:   "execute raw",
			call:   func(c *Client) error { _, err := c.ExecuteRaw(ctx, Request{Name: "ping", Method: MethodGet, URL: "http://x"}); return err },
			method: http.MethodPost, path: "/api/execute-request",
			reply: `{"status":204}`,
		},
		{
			name:   "environments",
			call:   func(c *Client) error { _, err := c.Environments(ctx, "w1"); return err },
			method: http.MethodGet, path: "/api/workspace-environments/w1",
			reply: `[]`,
		},
		{
			name:   "update environment",
			call:   func(c *Client) error { _, err := c.UpdateEnvironment(ctx, "e1", Environment{Name: "prod"}); return err },
			method: http.MethodPut, path: "/api/environments/e1",
			reply: `{"id":"e1"}`,
		},
		{
			name:   "webhooks page",
			call:   func(c *Client) error { _, err := c.Webhooks(ctx, "w1", PageQuery{Page: 2, Limit: 25}); return err },
			method: http.MethodGet, path: "/api/workspace-webhooks/w1", query: "limit=25&page=2",
			reply: `{"webhooks":[],"total":0}`,
		},
		{
			name:   "webhook requests default page",
			call:   func(c *Client) error { _, err := c.WebhookRequests(ctx, "h1", PageQuery{}); return err },
			method: http.MethodGet, path: "/api/webhooks/h1/requests",
			reply: `{"requests":[]}`,
		},
		{
			name:   "dashboard stats",
			call:   func(c *Client) error { _, err := c.DashboardStats(ctx); return err },
			method: http.MethodGet, path: "/api/dashboard/stats",
			reply: `{"workspaces":1}`,
		},
		{
			name:   "api health",
			call:   func(c *Client) error { _, err := c.APIHealth(ctx); return err },
			method: http.MethodGet, path: "/api/dashboard/api-health",
			reply: `{"status":"healthy"}`,
		},
		{
			name:   "mark notification read",
			call:   func(c *Client) error { return c.MarkNotificationRead(ctx, "n1") },
			method: http.MethodPut, path: "/api/notifications/n1/read",
		},
		{
			name:   "mark all read",
			call:   func(c *Client) error { return c.MarkAllNotificationsRead(ctx) },
			method: http.MethodPut, path: "/api/notifications/read-all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{reply: tt.reply}
			c := newTestClient(t, rec)

			require.NoError(t, tt.call(c))

			assert.Equal(t, tt.method, rec.method)
			assert.Equal(t, tt.path, rec.path)
			assert.Equal(t, tt.query, rec.query)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.body)
				assert.Equal(t, "application/json", rec.ctype)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	rec := &recorder{reply: `{"notifications":[{"id":"1","title":"Welcome to Volt!","read":false,"timestamp":1700000000}],"total":1,"unread_count":1}`}
	c := newTestClient(t, rec)

	list, err := c.Notifications(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Notifications, 1)
	assert.Equal(t, "Welcome to Volt!", list.Notifications[0].Title)
	assert.Equal(t, 1, list.UnreadCount)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		reply   string
		message string
	}{
		{"error field", http.StatusConflict, `{"error":"User with this email already exists"}`, "User with this email already exists"},
		{"message field", http.StatusBadRequest, `{"message":"bad input"}`, "bad input"},
		{"plain body", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"empty body", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &recorder{status: tt.status, reply: tt.reply})

			_, err := c.Workspaces(context.Background())
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.status, StatusOf(err))
			assert.False(t, IsUnauthorized(err))
		})
	}

	assert.True(t, IsNotFound(&Error{Status: http.StatusNotFound}))
	assert.Equal(t, 0, StatusOf(assert.AnError))
}

func TestUnauthorized_FiresHook(t *testing.T) {
	calls := 0
	rec := &recorder{status: http.StatusUnauthorized, reply: `{"error":"Token required"}`}
	c := newTestClient(t, rec, WithOnUnauthorized(func() { calls++ }))

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.EqualError(t, err, "api: status 401: Token required")
	assert.Equal(t, 1, calls)

	rec.mu.Lock()
	rec.status = http.StatusForbidden
	rec.mu.Unlock()
	_, err = c.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls, "only 401 fires the hook")

	c.SetOnUnauthorized(nil)
	rec.mu.Lock()
	rec.status = http.StatusUnauthorized
	rec.mu.Unlock()
	_, err = c.Me(context.Background())
	assert.True(t, IsUnauthorized(err))
}

func TestSessionCookie_RoundTrips(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "volt_token", Value: "secret", Path: "/", HttpOnly: true})
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":    map[string]string{"id": "u1", "email": "ann@example.com"},
			"message": "Login successful",
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("volt_token"); err != nil || ck.Value != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"Token required"}`)
			return
		}
		_, _ = io.WriteString(w, `{"user":{"id":"u1","email":"ann@example.com"}}`)
	})
	c := newTestClient(t, mux)
	ctx := context.Background()

	_, err := c.Me(ctx)
	require.True(t, IsUnauthorized(err), "no cookie before login")

	resp, err := c.Login(ctx, Credentials{Email: "ann@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, "Login successful", resp.Message)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", me.Email)
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(t, &recorder{reply: `[]`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Workspaces(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, StatusOf(err))
}
