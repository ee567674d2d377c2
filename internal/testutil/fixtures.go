package testutil

import (
	"time"

	"github.com/roach88/volt/internal/model"
)

// NewProject returns a minimal active project with zeroed stats.
func NewProject(id string) model.Project {
	return model.Project{
		ID:        id,
		Name:      "Project " + id,
		Type:      model.ProjectAPI,
		Status:    model.ProjectActive,
		Priority:  model.PriorityMedium,
		StartDate: Epoch,
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
		OwnerID:   "owner-1",
		Members:   []model.ProjectMember{},
		Tags:      []string{},
	}
}

// NewTask returns a task in projectID with the given status.
func NewTask(id, projectID string, status model.TaskStatus) model.Task {
	return model.Task{
		ID:        id,
		Title:     "Task " + id,
		Status:    status,
		Priority:  model.PriorityMedium,
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
		Tags:      []string{},
		ProjectID: projectID,
	}
}

// NewMilestone returns an upcoming milestone in projectID due a week after
// Epoch.
func NewMilestone(id, projectID string) model.Milestone {
	return model.Milestone{
		ID:        id,
		Title:     "Milestone " + id,
		DueDate:   Epoch.Add(7 * 24 * time.Hour),
		Status:    model.MilestoneUpcoming,
		ProjectID: projectID,
		TaskIDs:   []string{},
	}
}

// NewWorkspace returns a workspace owned by owner-1.
func NewWorkspace(id string) model.Workspace {
	return model.Workspace{
		ID:        id,
		Name:      "Workspace " + id,
		OwnerID:   "owner-1",
		Members:   []string{"owner-1"},
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
	}
}

// NewCollection returns an empty collection in workspaceID.
func NewCollection(id, workspaceID string) model.Collection {
	return model.Collection{
		ID:          id,
		Name:        "Collection " + id,
		WorkspaceID: workspaceID,
		CreatedBy:   "owner-1",
		Requests:    []string{},
		CreatedAt:   Epoch,
		UpdatedAt:   Epoch,
	}
}

// NewUser returns a user with a valid email.
func NewUser(id string) model.User {
	return model.User{
		ID:        id,
		Username:  "user-" + id,
		Email:     id + "@example.com",
		CreatedAt: Epoch,
		UpdatedAt: Epoch,
	}
}

// TimePtr returns &t.
func TimePtr(t time.Time) *time.Time {
	return &t
}
