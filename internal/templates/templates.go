// Package templates loads the project template catalogue.
//
// The catalogue is a CUE document. Its schema constrains every enum and
// bound the model package knows about, so a template that would produce an
// invalid task or milestone fails at load time with a CUE position rather
// than later inside the project store.
package templates

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/volt/internal/ids"
	"github.com/roach88/volt/internal/model"
)

//go:embed templates.cue
var defaultSource []byte

// Error is a catalogue load failure, with the CUE position when one is known.
type Error struct {
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Load returns the built-in catalogue.
func Load() ([]model.ProjectTemplate, error) {
	return LoadBytes("templates.cue", defaultSource)
}

// LoadBytes compiles src and returns its "templates" list in order.
func LoadBytes(filename string, src []byte) ([]model.ProjectTemplate, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	list := v.LookupPath(cue.ParsePath("templates"))
	if !list.Exists() {
		return nil, &Error{Message: "templates: field not found", Pos: v.Pos()}
	}
	if err := list.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	var out []model.ProjectTemplate
	if err := list.Decode(&out); err != nil {
		return nil, formatCUEError(err)
	}

	seen := make(map[string]bool, len(out))
	for _, tpl := range out {
		if seen[tpl.ID] {
			return nil, &Error{Message: fmt.Sprintf("templates: duplicate id %q", tpl.ID), Pos: list.Pos()}
		}
		seen[tpl.ID] = true
	}
	return out, nil
}

// Find returns the template with the given id.
func Find(catalogue []model.ProjectTemplate, id string) (model.ProjectTemplate, bool) {
	idx := slices.IndexFunc(catalogue, func(t model.ProjectTemplate) bool { return t.ID == id })
	if idx < 0 {
		return model.ProjectTemplate{}, false
	}
	return catalogue[idx], true
}

// Instantiate builds a planning project from tpl, starting at start.
//
// Task and milestone ids come from gen, in template order (tasks first).
// Milestones fall due DueInDays after start and the project EstimatedDuration
// days after start. Stats count the new tasks as of start.
func Instantiate(tpl model.ProjectTemplate, projectID, ownerID string, start time.Time, gen ids.Generator) model.ProjectView {
	tasks := make([]model.Task, len(tpl.DefaultTasks))
	for i, tt := range tpl.DefaultTasks {
		tasks[i] = model.Task{
			ID:          gen.Generate(),
			Title:       tt.Title,
			Description: tt.Description,
			Status:      tt.Status,
			Priority:    tt.Priority,
			CreatedAt:   start,
			UpdatedAt:   start,
			Tags:        cloneStrings(tt.Tags),
			ProjectID:   projectID,
		}
	}

	milestones := make([]model.Milestone, len(tpl.DefaultMilestones))
	for i, tm := range tpl.DefaultMilestones {
		milestones[i] = model.Milestone{
			ID:          gen.Generate(),
			Title:       tm.Title,
			Description: tm.Description,
			DueDate:     start.AddDate(0, 0, tm.DueInDays),
			Status:      tm.Status,
			Progress:    tm.Progress,
			ProjectID:   projectID,
			TaskIDs:     []string{},
		}
	}

	due := start.AddDate(0, 0, tpl.EstimatedDuration)
	p := model.Project{
		ID:          projectID,
		Name:        tpl.Name,
		Description: tpl.Description,
		Type:        tpl.Type,
		Status:      model.ProjectPlanning,
		Priority:    model.PriorityMedium,
		StartDate:   start,
		DueDate:     &due,
		CreatedAt:   start,
		UpdatedAt:   start,
		OwnerID:     ownerID,
		Members:     []model.ProjectMember{},
		Tags:        cloneStrings(tpl.Tags),
	}
	p.Stats.TotalTasks, p.Stats.CompletedTasks, p.Stats.OverdueTasks = model.ComputeTaskStats(tasks, start)
	p.Stats.LastActivity = start

	return model.ProjectView{Project: p, Tasks: tasks, Milestones: milestones}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

// formatCUEError keeps the first error and its position.
func formatCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	e := &Error{Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		e.Pos = positions[0]
	}
	return e
}
