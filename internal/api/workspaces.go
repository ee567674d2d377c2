package api

import (
	"context"
	"net/http"

	"github.com/roach88/volt/internal/model"
)

// Workspaces lists the workspaces the user belongs to.
func (c *Client) Workspaces(ctx context.Context) ([]model.Workspace, error) {
	var out []model.Workspace
	if err := c.do(ctx, http.MethodGet, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWorkspace creates a workspace owned by the user.
func (c *Client) CreateWorkspace(ctx context.Context, in NamedInput) (*model.Workspace, error) {
	var out model.Workspace
	if err := c.do(ctx, http.MethodPost, "/workspaces", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Workspace fetches one workspace.
func (c *Client) Workspace(ctx context.Context, id string) (*model.Workspace, error) {
	var out model.Workspace
	if err := c.do(ctx, http.MethodGet, pathf("/workspace-detail/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateWorkspace renames or redescribes a workspace.
func (c *Client) UpdateWorkspace(ctx context.Context, id string, in NamedInput) error {
	return c.do(ctx, http.MethodPut, pathf("/workspace-detail/%s", id), in, nil)
}

// DeleteWorkspace deletes a workspace and everything in it.
func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf("/workspace-detail/%s", id), nil, nil)
}

// InviteLink generates an invitation to the workspace with the given role.
func (c *Client) InviteLink(ctx context.Context, workspaceID, role string) (*Invitation, error) {
	var out Invitation
	body := map[string]string{"role": role}
	if err := c.do(ctx, http.MethodPost, pathf("/workspaces/%s/invite-link", workspaceID), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AcceptInvitation joins the workspace an invitation token points at.
func (c *Client) AcceptInvitation(ctx context.Context, token string) (*AcceptedInvitation, error) {
	var out AcceptedInvitation
	if err := c.do(ctx, http.MethodPost, pathf("/invitations/%s/accept", token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collections lists the collections of a workspace.
func (c *Client) Collections(ctx context.Context, workspaceID string) ([]model.Collection, error) {
	var out []model.Collection
	if err := c.do(ctx, http.MethodGet, pathf("/workspace-collections/%s", workspaceID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCollection creates a collection in a workspace.
func (c *Client) CreateCollection(ctx context.Context, workspaceID string, in NamedInput) (*model.Collection, error) {
	var out model.Collection
	if err := c.do(ctx, http.MethodPost, pathf("/workspace-collections/%s", workspaceID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Collection fetches one collection.
func (c *Client) Collection(ctx context.Context, id string) (*model.Collection, error) {
	var out model.Collection
	if err := c.do(ctx, http.MethodGet, pathf("/collections/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCollection renames or redescribes a collection.
func (c *Client) UpdateCollection(ctx context.Context, id string, in NamedInput) error {
	return c.do(ctx, http.MethodPut, pathf("/collections/%s", id), in, nil)
}

// DeleteCollection deletes a collection and its requests.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, pathf("/collections/%s", id), nil, nil)
}

// ToggleFavorite stars or unstars a collection for the user and returns the
// updated collection.
func (c *Client) ToggleFavorite(ctx context.Context, id string) (*model.Collection, error) {
	var out model.Collection
	if err := c.do(ctx, http.MethodPost, pathf("/collections/%s/favorite", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
