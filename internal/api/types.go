package api

import (
	"time"

	"github.com/roach88/volt/internal/model"
)

// Credentials log a user in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration creates an account.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User    model.User `json:"user"`
	Message string     `json:"message"`
}

// NamedInput is the body of create calls that take a name and description.
type NamedInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Invitation is a generated workspace invite.
type Invitation struct {
	Token       string     `json:"token"`
	InviteLink  string     `json:"inviteLink"`
	Role        string     `json:"role"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	WorkspaceID string     `json:"workspaceId"`
}

// AcceptedInvitation is returned when joining a workspace.
type AcceptedInvitation struct {
	Message   string          `json:"message"`
	Workspace model.Workspace `json:"workspace"`
	Role      string          `json:"role"`
}

// HTTPMethod is the verb of a saved request.
type HTTPMethod string

const (
	MethodGet    HTTPMethod = "GET"
	MethodPost   HTTPMethod = "POST"
	MethodPut    HTTPMethod = "PUT"
	MethodDelete HTTPMethod = "DELETE"
	MethodPatch  HTTPMethod = "PATCH"
)

// RequestBody is the payload of a saved request.
type RequestBody struct {
	Type    string `json:"type"` // json, form, raw, binary
	Content string `json:"content"`
}

// RequestAuth is the auth scheme of a saved request.
type RequestAuth struct {
	Type        string            `json:"type"` // bearer, basic, apikey, none
	Credentials map[string]string `json:"credentials"`
}

// Request is a saved API request inside a collection.
type Request struct {
	ID           string            `json:"id,omitempty"`
	Name         string            `json:"name"`
	Method       HTTPMethod        `json:"method"`
	URL          string            `json:"url"`
	Headers      map[string]string `json:"headers"`
	Body         RequestBody       `json:"body"`
	Auth         RequestAuth       `json:"auth"`
	Tests        []string          `json:"tests"`
	CollectionID string            `json:"collection_id,omitempty"`
	CreatedBy    string            `json:"created_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ExecuteResult is the backend's record of running a request.
type ExecuteResult struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
	TimeMS  int64             `json:"time"`
}

// Variable is one environment entry.
type Variable struct {
	Key          string `json:"key"`
	Value        string `json:"value"`
	InitialValue string `json:"initial_value"`
	Type         string `json:"type"` // default, secret
	Enabled      bool   `json:"enabled"`
}

// Environment is a named variable set in a workspace.
type Environment struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	WorkspaceID string     `json:"workspace_id,omitempty"`
	Variables   []Variable `json:"variables"`
	CreatedBy   string     `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WebhookStats are counters kept by the backend per webhook.
type WebhookStats struct {
	TotalRequests   int64      `json:"total_requests"`
	SuccessRequests int64      `json:"success_requests"`
	FailedRequests  int64      `json:"failed_requests"`
	LastRequestAt   *time.Time `json:"last_request_at,omitempty"`
	AverageResponse int64      `json:"average_response"`
}

// Webhook is a capture endpoint. URL is the public address.
type Webhook struct {
	ID          string         `json:"id,omitempty"`
	WorkspaceID string         `json:"workspace_id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Token       string         `json:"token,omitempty"`
	Status      string         `json:"status"`
	URL         string         `json:"url,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Stats       WebhookStats   `json:"stats"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	ExpiresAt   *time.Time     `json:"expires_at,omitempty"`
}

// Page describes a paginated list.
type Page struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// WebhookList is one page of webhooks.
type WebhookList struct {
	Webhooks []Webhook `json:"webhooks"`
	Page
}

// WebhookRequest is one captured call to a webhook.
type WebhookRequest struct {
	ID             string            `json:"id"`
	WebhookID      string            `json:"webhook_id"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	Query          map[string]string `json:"query"`
	Headers        map[string]string `json:"headers"`
	Body           string            `json:"body"`
	IP             string            `json:"ip"`
	ResponseStatus int               `json:"response_status"`
	ResponseTime   int64             `json:"response_time"`
	Timestamp      time.Time         `json:"timestamp"`
	Error          string            `json:"error,omitempty"`
}

// WebhookRequestList is one page of captured calls.
type WebhookRequestList struct {
	Requests []WebhookRequest `json:"requests"`
	Page
}

// PageQuery selects a page; zero values use the server defaults.
type PageQuery struct {
	Page  int
	Limit int
}

// DashboardStats are per-user totals.
type DashboardStats struct {
	Workspaces    int64 `json:"workspaces"`
	Collections   int64 `json:"collections"`
	Requests      int64 `json:"requests"`
	Environments  int64 `json:"environments"`
	ActivityToday int64 `json:"activity_today"`
}

// ServiceHealth is the state of one backend dependency.
type ServiceHealth struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
}

// APIHealth is the backend health report.
type APIHealth struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceHealth `json:"services"`
}

// Activity is one dashboard feed item. Timestamp is Unix seconds.
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   int64  `json:"timestamp"`
	User        string `json:"user"`
}

// ActivityFeed is the dashboard activity list.
type ActivityFeed struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

// TeamMember is a collaborator across the user's workspaces.
type TeamMember struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TeamSummary is the dashboard team panel.
type TeamSummary struct {
	TeamMembers     []TeamMember `json:"team_members"`
	TotalMembers    int          `json:"total_members"`
	TotalWorkspaces int          `json:"total_workspaces"`
	ActiveMembers   int          `json:"active_members"`
}

// Notification is one inbox entry. Timestamp is Unix seconds.
type Notification struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Read      bool   `json:"read"`
	Timestamp int64  `json:"timestamp"`
	ActionURL string `json:"action_url,omitempty"`
}

// NotificationList is the inbox.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	UnreadCount   int            `json:"unread_count"`
}
