package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/project"
	"github.com/roach88/volt/internal/templates"
)

// argsError marks a malformed step, as opposed to a store outcome.
type argsError struct{ err error }

func (e *argsError) Error() string { return "bad args: " + e.err.Error() }
func (e *argsError) Unwrap() error { return e.err }

type actionFunc func(h *Harness, args map[string]interface{}) error

var actions map[string]actionFunc

func init() {
	actions = map[string]actionFunc{
		"add_project":          addProject,
		"update_project":       updateProject,
		"delete_project":       byID((*project.Store).DeleteProject),
		"select_project":       byID((*project.Store).SetCurrentProject),
		"add_task":             addTask,
		"update_task":          updateTask,
		"delete_task":          byID((*project.Store).DeleteTask),
		"add_milestone":        addMilestone,
		"update_milestone":     updateMilestone,
		"delete_milestone":     byID((*project.Store).DeleteMilestone),
		"set_filters":          setFilters,
		"set_view":             setView,
		"advance_clock":        advanceClock,
		"instantiate_template": instantiateTemplate,
	}
}

// decodeArgs converts YAML args into a typed struct through JSON, rejecting
// unknown keys.
func decodeArgs(args map[string]interface{}, out any) error {
	if args == nil {
		args = map[string]interface{}{}
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return &argsError{err}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return &argsError{err}
	}
	return nil
}

type idArgs struct {
	ID string `json:"id"`
}

func byID(fn func(*project.Store, string) error) actionFunc {
	return func(h *Harness, args map[string]interface{}) error {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return err
		}
		return fn(h.store, a.ID)
	}
}

type projectArgs struct {
	ID           string               `json:"id"`
	Name         *string              `json:"name"`
	Description  *string              `json:"description"`
	Type         *model.ProjectType   `json:"type"`
	Status       *model.ProjectStatus `json:"status"`
	Priority     *model.Priority      `json:"priority"`
	Progress     *int                 `json:"progress"`
	StartDate    *time.Time           `json:"start_date"`
	DueDate      *time.Time           `json:"due_date"`
	ClearDueDate bool                 `json:"clear_due_date"`
	Tags         []string             `json:"tags"`
}

func addProject(h *Harness, args map[string]interface{}) error {
	var a projectArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	now := h.clock.Now()
	p := model.Project{
		ID:        a.ID,
		Status:    model.ProjectPlanning,
		Priority:  model.PriorityMedium,
		Type:      model.ProjectOther,
		StartDate: now,
		DueDate:   a.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
		Members:   []model.ProjectMember{},
		Tags:      a.Tags,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	setIf(&p.Name, a.Name)
	setIf(&p.Description, a.Description)
	setIf(&p.Type, a.Type)
	setIf(&p.Status, a.Status)
	setIf(&p.Priority, a.Priority)
	setIf(&p.Progress, a.Progress)
	setIf(&p.StartDate, a.StartDate)
	return h.store.AddProject(p)
}

func updateProject(h *Harness, args map[string]interface{}) error {
	var a projectArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	return h.store.UpdateProject(a.ID, project.ProjectUpdate{
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		Status:       a.Status,
		Priority:     a.Priority,
		Progress:     a.Progress,
		StartDate:    a.StartDate,
		DueDate:      a.DueDate,
		ClearDueDate: a.ClearDueDate,
		Tags:         a.Tags,
	})
}

type taskArgs struct {
	ID           string            `json:"id"`
	ProjectID    *string           `json:"project_id"`
	Title        *string           `json:"title"`
	Description  *string           `json:"description"`
	Status       *model.TaskStatus `json:"status"`
	Priority     *model.Priority   `json:"priority"`
	AssignedTo   *string           `json:"assigned_to"`
	DueDate      *time.Time        `json:"due_date"`
	ClearDueDate bool              `json:"clear_due_date"`
	Tags         []string          `json:"tags"`
}

func addTask(h *Harness, args map[string]interface{}) error {
	var a taskArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	now := h.clock.Now()
	t := model.Task{
		ID:        a.ID,
		Status:    model.TaskTodo,
		Priority:  model.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
		DueDate:   a.DueDate,
		Tags:      a.Tags,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	setIf(&t.ProjectID, a.ProjectID)
	setIf(&t.Title, a.Title)
	setIf(&t.Description, a.Description)
	setIf(&t.Status, a.Status)
	setIf(&t.Priority, a.Priority)
	setIf(&t.AssignedTo, a.AssignedTo)
	return h.store.AddTask(t)
}

func updateTask(h *Harness, args map[string]interface{}) error {
	var a taskArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	return h.store.UpdateTask(a.ID, project.TaskUpdate{
		Title:        a.Title,
		Description:  a.Description,
		Status:       a.Status,
		Priority:     a.Priority,
		AssignedTo:   a.AssignedTo,
		DueDate:      a.DueDate,
		ClearDueDate: a.ClearDueDate,
		Tags:         a.Tags,
		ProjectID:    a.ProjectID,
	})
}

type milestoneArgs struct {
	ID          string                 `json:"id"`
	ProjectID   string                 `json:"project_id"`
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	DueDate     *time.Time             `json:"due_date"`
	Status      *model.MilestoneStatus `json:"status"`
	Progress    *int                   `json:"progress"`
	TaskIDs     []string               `json:"tasks"`
}

func addMilestone(h *Harness, args map[string]interface{}) error {
	var a milestoneArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	m := model.Milestone{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		Status:    model.MilestoneUpcoming,
		DueDate:   h.clock.Now(),
		TaskIDs:   a.TaskIDs,
	}
	if m.TaskIDs == nil {
		m.TaskIDs = []string{}
	}
	setIf(&m.Title, a.Title)
	setIf(&m.Description, a.Description)
	setIf(&m.DueDate, a.DueDate)
	setIf(&m.Status, a.Status)
	setIf(&m.Progress, a.Progress)
	return h.store.AddMilestone(m)
}

func updateMilestone(h *Harness, args map[string]interface{}) error {
	var a milestoneArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	if a.ProjectID != "" {
		return &argsError{fmt.Errorf("milestones cannot move between projects")}
	}
	return h.store.UpdateMilestone(a.ID, project.MilestoneUpdate{
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate,
		Status:      a.Status,
		Progress:    a.Progress,
		TaskIDs:     a.TaskIDs,
	})
}

type filterArgs struct {
	Status   *model.ProjectStatus `json:"status"`
	Type     *model.ProjectType   `json:"type"`
	Priority *model.Priority      `json:"priority"`
	Search   *string              `json:"search"`
}

func setFilters(h *Harness, args map[string]interface{}) error {
	var a filterArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	h.store.SetFilters(project.FilterUpdate{
		Status:   a.Status,
		Type:     a.Type,
		Priority: a.Priority,
		Search:   a.Search,
	})
	return nil
}

func setView(h *Harness, args map[string]interface{}) error {
	var a struct {
		View project.View `json:"view"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	return h.store.SetView(a.View)
}

func advanceClock(h *Harness, args map[string]interface{}) error {
	var a struct {
		By string `json:"by"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	d, err := time.ParseDuration(a.By)
	if err != nil {
		return &argsError{err}
	}
	if d < 0 {
		return &argsError{fmt.Errorf("clock cannot move backwards: %s", a.By)}
	}
	h.clock.Advance(d)
	return nil
}

// instantiateTemplate adds a project built from a catalogue template, with
// task and milestone ids from the run's sequential generator.
func instantiateTemplate(h *Harness, args map[string]interface{}) error {
	var a struct {
		Template  string `json:"template"`
		ProjectID string `json:"project_id"`
		OwnerID   string `json:"owner_id"`
	}
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	tpl, ok := templates.Find(h.templates, a.Template)
	if !ok {
		return fmt.Errorf("template %q: %w", a.Template, project.ErrNotFound)
	}
	view := templates.Instantiate(tpl, a.ProjectID, a.OwnerID, h.clock.Now(), h.ids)
	p := view.Project
	p.Stats = model.ProjectStats{}
	if err := h.store.AddProject(p); err != nil {
		return err
	}
	for _, t := range view.Tasks {
		if err := h.store.AddTask(t); err != nil {
			return err
		}
	}
	for _, m := range view.Milestones {
		if err := h.store.AddMilestone(m); err != nil {
			return err
		}
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
