package project

import (
	"fmt"

	"github.com/roach88/volt/internal/model"
)

// View is the project list layout.
type View string

const (
	ViewGrid   View = "grid"
	ViewList   View = "list"
	ViewKanban View = "kanban"
)

// Valid reports whether v is a known layout.
func (v View) Valid() bool {
	switch v {
	case ViewGrid, ViewList, ViewKanban:
		return true
	}
	return false
}

// All disables a filter.
const All = "all"

// Filters narrow the project list. Transient UI state, never persisted.
type Filters struct {
	Status   model.ProjectStatus `json:"status"`
	Type     model.ProjectType   `json:"type"`
	Priority model.Priority      `json:"priority"`
	Search   string              `json:"search"`
}

// DefaultFilters lets every project through.
func DefaultFilters() Filters {
	return Filters{Status: All, Type: All, Priority: All}
}

// FilterUpdate is a partial Filters; nil fields are left unchanged.
type FilterUpdate struct {
	Status   *model.ProjectStatus
	Type     *model.ProjectType
	Priority *model.Priority
	Search   *string
}

// State is the project snapshot.
type State struct {
	Projects         []model.Project         `json:"projects"`
	CurrentProjectID string                  `json:"current_project_id,omitempty"`
	Tasks            []model.Task            `json:"tasks"`
	Milestones       []model.Milestone       `json:"milestones"`
	Templates        []model.ProjectTemplate `json:"templates"`
	Loading          bool                    `json:"is_loading"`
	Error            string                  `json:"error,omitempty"`
	Filters          Filters                 `json:"filters"`
	View             View                    `json:"view"`
}

func initialState() State {
	return State{
		Filters: DefaultFilters(),
		View:    ViewGrid,
	}
}

// Project returns the project with its tasks and milestones embedded.
func (s State) Project(id string) (model.ProjectView, bool) {
	idx := s.projectIndex(id)
	if idx < 0 {
		return model.ProjectView{}, false
	}
	return s.view(s.Projects[idx]), true
}

// Views returns every project with its tasks and milestones embedded, in
// project order.
func (s State) Views() []model.ProjectView {
	tasks := make(map[string][]model.Task)
	for _, t := range s.Tasks {
		tasks[t.ProjectID] = append(tasks[t.ProjectID], t)
	}
	milestones := make(map[string][]model.Milestone)
	for _, m := range s.Milestones {
		milestones[m.ProjectID] = append(milestones[m.ProjectID], m)
	}

	out := make([]model.ProjectView, len(s.Projects))
	for i, p := range s.Projects {
		out[i] = model.ProjectView{
			Project:    p,
			Tasks:      orEmpty(tasks[p.ID]),
			Milestones: orEmpty(milestones[p.ID]),
		}
	}
	return out
}

// CurrentProject returns the selected project, if any.
func (s State) CurrentProject() (model.ProjectView, bool) {
	if s.CurrentProjectID == "" {
		return model.ProjectView{}, false
	}
	return s.Project(s.CurrentProjectID)
}

// TasksByProject returns the tasks of projectID in registry order.
func (s State) TasksByProject(projectID string) []model.Task {
	out := []model.Task{}
	for _, t := range s.Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// MilestonesByProject returns the milestones of projectID in registry order.
func (s State) MilestonesByProject(projectID string) []model.Milestone {
	out := []model.Milestone{}
	for _, m := range s.Milestones {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out
}

// Task returns the task with the given id.
func (s State) Task(id string) (model.Task, bool) {
	if idx := s.taskIndex(id); idx >= 0 {
		return s.Tasks[idx], true
	}
	return model.Task{}, false
}

// Milestone returns the milestone with the given id.
func (s State) Milestone(id string) (model.Milestone, bool) {
	if idx := s.milestoneIndex(id); idx >= 0 {
		return s.Milestones[idx], true
	}
	return model.Milestone{}, false
}

// FilteredProjects applies Filters to Projects.
func (s State) FilteredProjects() []model.ProjectView {
	all := s.Views()
	match := newMatcher(s.Filters)
	out := make([]model.ProjectView, 0, len(all))
	for _, p := range all {
		if match(p.Project) {
			out = append(out, p)
		}
	}
	return out
}

// CheckConsistency verifies that every project's derived view equals the
// registry subsequence and that task counters match a recount as of the
// stored counters. It exists for tests and debugging.
func (s State) CheckConsistency() error {
	seen := make(map[string]bool, len(s.Tasks))
	for _, t := range s.Tasks {
		if seen[t.ID] {
			return fmt.Errorf("task %q registered twice", t.ID)
		}
		seen[t.ID] = true
	}
	for _, v := range s.Views() {
		want := s.TasksByProject(v.ID)
		if len(want) != len(v.Tasks) {
			return fmt.Errorf("project %q: %d embedded tasks, registry has %d", v.ID, len(v.Tasks), len(want))
		}
		for i := range want {
			if want[i].ID != v.Tasks[i].ID {
				return fmt.Errorf("project %q: embedded task %d is %q, registry has %q", v.ID, i, v.Tasks[i].ID, want[i].ID)
			}
		}
		if v.Stats.TotalTasks != len(want) {
			return fmt.Errorf("project %q: total_tasks=%d, registry has %d", v.ID, v.Stats.TotalTasks, len(want))
		}
	}
	return nil
}

func (s State) view(p model.Project) model.ProjectView {
	return model.ProjectView{
		Project:    p,
		Tasks:      s.TasksByProject(p.ID),
		Milestones: s.MilestonesByProject(p.ID),
	}
}

func (s State) projectIndex(id string) int {
	for i, p := range s.Projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s State) taskIndex(id string) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s State) milestoneIndex(id string) int {
	for i, m := range s.Milestones {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
