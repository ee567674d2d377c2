package project

import (
	"fmt"
	"time"

	"github.com/roach88/volt/internal/clock"
	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/reactive"
)

// Store is the project container.
type Store struct {
	store *reactive.Store[State]
	clock clock.Clock
}

// New creates an empty store. A nil clock means the system clock.
func New(c clock.Clock) *Store {
	return &Store{
		store: reactive.New(initialState()),
		clock: clock.OrSystem(c),
	}
}

// ProjectUpdate is a partial project edit; nil fields are left unchanged.
// Stats are not editable.
type ProjectUpdate struct {
	Name         *string
	Description  *string
	Type         *model.ProjectType
	Status       *model.ProjectStatus
	Priority     *model.Priority
	Progress     *int
	StartDate    *time.Time
	DueDate      *time.Time
	ClearDueDate bool
	Members      []model.ProjectMember
	Tags         []string
	Settings     *model.ProjectSettings
}

// TaskUpdate is a partial task edit; nil fields are left unchanged.
// Setting ProjectID moves the task to another project.
type TaskUpdate struct {
	Title        *string
	Description  *string
	Status       *model.TaskStatus
	Priority     *model.Priority
	AssignedTo   *string
	DueDate      *time.Time
	ClearDueDate bool
	Tags         []string
	ProjectID    *string
}

// MilestoneUpdate is a partial milestone edit; nil fields are left unchanged.
type MilestoneUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *model.MilestoneStatus
	Progress    *int
	TaskIDs     []string
}

// --- projects ---

// SetProjects replaces the project list. Tasks, milestones and stats are
// taken as given.
func (s *Store) SetProjects(projects []model.Project) {
	s.store.Update(func(cur State) State {
		cur.Projects = projects
		return cur
	})
}

// Hydrate replaces projects, tasks and milestones from projects that carry
// their tasks and milestones embedded, as the backend sends them.
func (s *Store) Hydrate(views []model.ProjectView) {
	projects := make([]model.Project, 0, len(views))
	var tasks []model.Task
	var milestones []model.Milestone
	for _, v := range views {
		projects = append(projects, v.Project)
		for _, t := range v.Tasks {
			if t.ProjectID == "" {
				t.ProjectID = v.ID
			}
			tasks = append(tasks, t)
		}
		for _, m := range v.Milestones {
			if m.ProjectID == "" {
				m.ProjectID = v.ID
			}
			milestones = append(milestones, m)
		}
	}
	s.store.Update(func(cur State) State {
		cur.Projects = projects
		cur.Tasks = tasks
		cur.Milestones = milestones
		return cur
	})
}

// AddProject appends p.
func (s *Store) AddProject(p model.Project) error {
	if err := p.Validate(); err != nil {
		return invalid("project", p.ID, err)
	}
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		if cur.projectIndex(p.ID) >= 0 {
			err = duplicate("project", p.ID)
			return cur, false
		}
		cur.Projects = appendCopy(cur.Projects, p)
		return cur, true
	})
	return err
}

// UpdateProject merges u into the project and stamps UpdatedAt.
func (s *Store) UpdateProject(id string, u ProjectUpdate) error {
	now := s.clock.Now()
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.projectIndex(id)
		if idx < 0 {
			err = notFound("project", id)
			return cur, false
		}
		p := applyProjectUpdate(cur.Projects[idx], u)
		p.UpdatedAt = now
		if verr := p.Validate(); verr != nil {
			err = invalid("project", id, verr)
			return cur, false
		}
		cur.Projects = replaceAt(cur.Projects, idx, p)
		return cur, true
	})
	return err
}

// DeleteProject removes the project together with its tasks and milestones.
// A deleted current project clears the selection.
func (s *Store) DeleteProject(id string) error {
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.projectIndex(id)
		if idx < 0 {
			err = notFound("project", id)
			return cur, false
		}
		cur.Projects = removeAt(cur.Projects, idx)
		cur.Tasks = filterOut(cur.Tasks, func(t model.Task) bool { return t.ProjectID == id })
		cur.Milestones = filterOut(cur.Milestones, func(m model.Milestone) bool { return m.ProjectID == id })
		if cur.CurrentProjectID == id {
			cur.CurrentProjectID = ""
		}
		return cur, true
	})
	return err
}

// SetCurrentProject selects a project by id; "" clears the selection.
func (s *Store) SetCurrentProject(id string) error {
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		if id != "" && cur.projectIndex(id) < 0 {
			err = notFound("project", id)
			return cur, false
		}
		cur.CurrentProjectID = id
		return cur, true
	})
	return err
}

// --- tasks ---

// SetTasks replaces the task registry without touching project stats.
func (s *Store) SetTasks(tasks []model.Task) {
	s.store.Update(func(cur State) State {
		cur.Tasks = tasks
		return cur
	})
}

// AddTask appends t to the registry and recounts its project's stats.
// A task whose project is not loaded is kept; it shows up once the project
// arrives.
func (s *Store) AddTask(t model.Task) error {
	if err := t.Validate(); err != nil {
		return invalid("task", t.ID, err)
	}
	now := s.clock.Now()
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		if cur.taskIndex(t.ID) >= 0 {
			err = duplicate("task", t.ID)
			return cur, false
		}
		cur.Tasks = appendCopy(cur.Tasks, t)
		cur.Projects = restat(cur.Projects, cur.Tasks, now, true, t.ProjectID)
		return cur, true
	})
	return err
}

// UpdateTask merges u into the task and stamps UpdatedAt. Counters are
// recounted only when the status, due date or owning project changed.
func (s *Store) UpdateTask(id string, u TaskUpdate) error {
	now := s.clock.Now()
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.taskIndex(id)
		if idx < 0 {
			err = notFound("task", id)
			return cur, false
		}
		old := cur.Tasks[idx]
		next := applyTaskUpdate(old, u)
		next.UpdatedAt = now
		if verr := next.Validate(); verr != nil {
			err = invalid("task", id, verr)
			return cur, false
		}

		recount := old.Status != next.Status || !sameTime(old.DueDate, next.DueDate) || old.ProjectID != next.ProjectID
		cur.Tasks = replaceAt(cur.Tasks, idx, next)
		affected := []string{next.ProjectID}
		if old.ProjectID != next.ProjectID {
			affected = append(affected, old.ProjectID)
		}
		cur.Projects = restat(cur.Projects, cur.Tasks, now, recount, affected...)
		return cur, true
	})
	return err
}

// DeleteTask removes the task, recounts its project's stats and drops the
// task from any milestone tracking it.
func (s *Store) DeleteTask(id string) error {
	now := s.clock.Now()
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.taskIndex(id)
		if idx < 0 {
			err = notFound("task", id)
			return cur, false
		}
		removed := cur.Tasks[idx]
		cur.Tasks = removeAt(cur.Tasks, idx)
		cur.Milestones = untrackTask(cur.Milestones, id)
		cur.Projects = restat(cur.Projects, cur.Tasks, now, true, removed.ProjectID)
		return cur, true
	})
	return err
}

// --- milestones ---

// SetMilestones replaces the milestone registry.
func (s *Store) SetMilestones(milestones []model.Milestone) {
	s.store.Update(func(cur State) State {
		cur.Milestones = milestones
		return cur
	})
}

// AddMilestone appends m to the registry.
func (s *Store) AddMilestone(m model.Milestone) error {
	if err := m.Validate(); err != nil {
		return invalid("milestone", m.ID, err)
	}
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		if cur.milestoneIndex(m.ID) >= 0 {
			err = duplicate("milestone", m.ID)
			return cur, false
		}
		cur.Milestones = appendCopy(cur.Milestones, m)
		return cur, true
	})
	return err
}

// UpdateMilestone merges u into the milestone.
func (s *Store) UpdateMilestone(id string, u MilestoneUpdate) error {
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.milestoneIndex(id)
		if idx < 0 {
			err = notFound("milestone", id)
			return cur, false
		}
		next := applyMilestoneUpdate(cur.Milestones[idx], u)
		if verr := next.Validate(); verr != nil {
			err = invalid("milestone", id, verr)
			return cur, false
		}
		cur.Milestones = replaceAt(cur.Milestones, idx, next)
		return cur, true
	})
	return err
}

// DeleteMilestone removes the milestone.
func (s *Store) DeleteMilestone(id string) error {
	var err error
	s.store.Mutate(func(cur State) (State, bool) {
		idx := cur.milestoneIndex(id)
		if idx < 0 {
			err = notFound("milestone", id)
			return cur, false
		}
		cur.Milestones = removeAt(cur.Milestones, idx)
		return cur, true
	})
	return err
}

// --- transient UI state ---

// SetFilters merges u into the current filters.
func (s *Store) SetFilters(u FilterUpdate) {
	s.store.Update(func(cur State) State {
		if u.Status != nil {
			cur.Filters.Status = *u.Status
		}
		if u.Type != nil {
			cur.Filters.Type = *u.Type
		}
		if u.Priority != nil {
			cur.Filters.Priority = *u.Priority
		}
		if u.Search != nil {
			cur.Filters.Search = *u.Search
		}
		return cur
	})
}

// SetView switches the layout.
func (s *Store) SetView(v View) error {
	if !v.Valid() {
		return fmt.Errorf("%w: unknown view %q", ErrInvalid, v)
	}
	s.store.Update(func(cur State) State {
		cur.View = v
		return cur
	})
	return nil
}

// SetTemplates replaces the template catalogue.
func (s *Store) SetTemplates(templates []model.ProjectTemplate) {
	s.store.Update(func(cur State) State {
		cur.Templates = templates
		return cur
	})
}

// SetLoading toggles the loading flag.
func (s *Store) SetLoading(loading bool) {
	s.store.Update(func(cur State) State {
		cur.Loading = loading
		return cur
	})
}

// SetError records a user-facing error; "" clears it.
func (s *Store) SetError(msg string) {
	s.store.Update(func(cur State) State {
		cur.Error = msg
		return cur
	})
}

// Reset discards everything.
func (s *Store) Reset() {
	s.store.Set(initialState())
}

// --- reads ---

// State returns the current snapshot. Callers must not modify it.
func (s *Store) State() State {
	return s.store.Get()
}

// ProjectByID returns the project with its tasks and milestones embedded.
func (s *Store) ProjectByID(id string) (model.ProjectView, bool) {
	return s.store.Get().Project(id)
}

// TasksByProject returns the tasks of projectID.
func (s *Store) TasksByProject(projectID string) []model.Task {
	return s.store.Get().TasksByProject(projectID)
}

// MilestonesByProject returns the milestones of projectID.
func (s *Store) MilestonesByProject(projectID string) []model.Milestone {
	return s.store.Get().MilestonesByProject(projectID)
}

// FilteredProjects returns the projects passing the current filters.
func (s *Store) FilteredProjects() []model.ProjectView {
	return s.store.Get().FilteredProjects()
}

// Templates returns the template catalogue.
func (s *Store) Templates() []model.ProjectTemplate {
	return s.store.Get().Templates
}

// Subscribe registers fn for every published snapshot.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	return s.store.Subscribe(fn)
}

// Close drops all subscribers.
func (s *Store) Close() {
	s.store.Close()
}
