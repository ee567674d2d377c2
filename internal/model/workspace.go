package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Workspace is the top-level collaboration container.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Collection is a named group of API requests inside one workspace.
type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	WorkspaceID string    `json:"workspace_id"`
	CreatedBy   string    `json:"created_by"`
	Requests    []string  `json:"requests"`
	FavoritedBy []string  `json:"favorited_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsFavoriteOf reports whether userID has starred the collection.
func (c Collection) IsFavoriteOf(userID string) bool {
	for _, id := range c.FavoritedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Names are limited the same way the backend binds them.
const maxNameLength = 100

// Validate checks the fields the backend requires on create.
func (w Workspace) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.ID, validation.Required),
		validation.Field(&w.Name, validation.Required, validation.Length(1, maxNameLength)),
	)
}

// Validate checks the fields the backend requires on create.
func (c Collection) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.WorkspaceID, validation.Required),
		validation.Field(&c.Name, validation.Required, validation.Length(1, maxNameLength)),
	)
}
