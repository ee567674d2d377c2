package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

// Priority ranks tasks and projects.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// MilestoneStatus is the workflow state of a milestone.
type MilestoneStatus string

const (
	MilestoneUpcoming   MilestoneStatus = "upcoming"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneOverdue    MilestoneStatus = "overdue"
)

// ProjectType classifies what a project builds.
type ProjectType string

const (
	ProjectAPI     ProjectType = "api"
	ProjectWeb     ProjectType = "web"
	ProjectMobile  ProjectType = "mobile"
	ProjectDesktop ProjectType = "desktop"
	ProjectData    ProjectType = "data"
	ProjectOther   ProjectType = "other"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// Task is a unit of work owned by exactly one project.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	AssignedTo  string     `json:"assigned_to,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags"`
	ProjectID   string     `json:"project_id"`
}

// IsOverdue reports whether the task has a due date strictly before now and
// is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskCompleted
}

// Milestone is a dated checkpoint tracking a set of tasks.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     time.Time       `json:"due_date"`
	Status      MilestoneStatus `json:"status"`
	Progress    int             `json:"progress"`
	ProjectID   string          `json:"project_id"`
	TaskIDs     []string        `json:"tasks"`
}

// ProjectMember is a collaborator on a project.
type ProjectMember struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar,omitempty"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}

// ProjectSettings are per-project toggles.
type ProjectSettings struct {
	IsPublic         bool `json:"is_public"`
	AllowGuestAccess bool `json:"allow_guest_access"`
	AutoSync         bool `json:"auto_sync"`
	Notifications    bool `json:"notifications"`
}

// ProjectStats is derived from the project's tasks. The project store is the
// only writer of the task counters.
type ProjectStats struct {
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	OverdueTasks   int       `json:"overdue_tasks"`
	ActiveMembers  int       `json:"active_members"`
	TotalAPICalls  int       `json:"total_api_calls"`
	LastActivity   time.Time `json:"last_activity"`
}

// Project is the normalized project record. Its tasks and milestones live in
// the project store's registries, keyed by ProjectID.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        ProjectType     `json:"type"`
	Status      ProjectStatus   `json:"status"`
	Priority    Priority        `json:"priority"`
	Progress    int             `json:"progress"`
	StartDate   time.Time       `json:"start_date"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	OwnerID     string          `json:"owner_id"`
	Members     []ProjectMember `json:"members"`
	Tags        []string        `json:"tags"`
	Settings    ProjectSettings `json:"settings"`
	Stats       ProjectStats    `json:"stats"`
}

// ProjectView is a project together with its tasks and milestones, in the
// embedded shape the backend sends and the UI renders.
type ProjectView struct {
	Project
	Tasks      []Task      `json:"tasks"`
	Milestones []Milestone `json:"milestones"`
}

// ComputeTaskStats counts total, completed and overdue tasks as of now.
func ComputeTaskStats(tasks []Task, now time.Time) (total, completed, overdue int) {
	for _, t := range tasks {
		total++
		if t.Status == TaskCompleted {
			completed++
		}
		if t.IsOverdue(now) {
			overdue++
		}
	}
	return total, completed, overdue
}

// Validate checks identity and enum fields. Empty enums are allowed.
func (t Task) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.ProjectID, validation.Required),
		validation.Field(&t.Status, validation.In(TaskTodo, TaskInProgress, TaskReview, TaskCompleted)),
		validation.Field(&t.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)),
	)
}

// Validate checks identity, enum and progress bounds.
func (m Milestone) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ID, validation.Required),
		validation.Field(&m.ProjectID, validation.Required),
		validation.Field(&m.Status, validation.In(MilestoneUpcoming, MilestoneInProgress, MilestoneCompleted, MilestoneOverdue)),
		validation.Field(&m.Progress, validation.Min(0), validation.Max(100)),
	)
}

// Validate checks identity, enum and progress bounds.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Type, validation.In(ProjectAPI, ProjectWeb, ProjectMobile, ProjectDesktop, ProjectData, ProjectOther)),
		validation.Field(&p.Status, validation.In(ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectArchived)),
		validation.Field(&p.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent)),
		validation.Field(&p.Progress, validation.Min(0), validation.Max(100)),
	)
}
