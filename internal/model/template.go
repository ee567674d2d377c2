package model

// TemplateTask is a task blueprint without identity or timestamps.
type TemplateTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags"`
}

// TemplateMilestone is a milestone blueprint. Its due date is relative to
// the project start.
type TemplateMilestone struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueInDays   int             `json:"due_in_days"`
	Status      MilestoneStatus `json:"status"`
	Progress    int             `json:"progress"`
}

// ProjectTemplate seeds a new project with tasks and milestones.
type ProjectTemplate struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	Description       string              `json:"description"`
	Type              ProjectType         `json:"type"`
	DefaultTasks      []TemplateTask      `json:"default_tasks"`
	DefaultMilestones []TemplateMilestone `json:"default_milestones"`
	Tags              []string            `json:"tags"`
	EstimatedDuration int                 `json:"estimated_duration"`
}
