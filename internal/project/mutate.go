package project

import (
	"slices"
	"time"

	"github.com/roach88/volt/internal/model"
)

// restat stamps LastActivity on the affected projects and, when recount is
// set, recounts their task counters from the registry. Returns a new slice
// when anything changed.
func restat(projects []model.Project, tasks []model.Task, now time.Time, recount bool, affected ...string) []model.Project {
	var out []model.Project
	for i, p := range projects {
		if !slices.Contains(affected, p.ID) {
			continue
		}
		if out == nil {
			out = slices.Clone(projects)
		}
		if recount {
			var owned []model.Task
			for _, t := range tasks {
				if t.ProjectID == p.ID {
					owned = append(owned, t)
				}
			}
			p.Stats.TotalTasks, p.Stats.CompletedTasks, p.Stats.OverdueTasks = model.ComputeTaskStats(owned, now)
		}
		p.Stats.LastActivity = now
		out[i] = p
	}
	if out == nil {
		return projects
	}
	return out
}

func applyProjectUpdate(p model.Project, u ProjectUpdate) model.Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Priority != nil {
		p.Priority = *u.Priority
	}
	if u.Progress != nil {
		p.Progress = *u.Progress
	}
	if u.StartDate != nil {
		p.StartDate = *u.StartDate
	}
	switch {
	case u.ClearDueDate:
		p.DueDate = nil
	case u.DueDate != nil:
		d := *u.DueDate
		p.DueDate = &d
	}
	if u.Members != nil {
		p.Members = slices.Clone(u.Members)
	}
	if u.Tags != nil {
		p.Tags = slices.Clone(u.Tags)
	}
	if u.Settings != nil {
		p.Settings = *u.Settings
	}
	return p
}

func applyTaskUpdate(t model.Task, u TaskUpdate) model.Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.AssignedTo != nil {
		t.AssignedTo = *u.AssignedTo
	}
	switch {
	case u.ClearDueDate:
		t.DueDate = nil
	case u.DueDate != nil:
		d := *u.DueDate
		t.DueDate = &d
	}
	if u.Tags != nil {
		t.Tags = slices.Clone(u.Tags)
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	return t
}

func applyMilestoneUpdate(m model.Milestone, u MilestoneUpdate) model.Milestone {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.Description != nil {
		m.Description = *u.Description
	}
	if u.DueDate != nil {
		m.DueDate = *u.DueDate
	}
	if u.Status != nil {
		m.Status = *u.Status
	}
	if u.Progress != nil {
		m.Progress = *u.Progress
	}
	if u.TaskIDs != nil {
		m.TaskIDs = slices.Clone(u.TaskIDs)
	}
	return m
}

// untrackTask drops taskID from every milestone tracking it.
func untrackTask(milestones []model.Milestone, taskID string) []model.Milestone {
	var out []model.Milestone
	for i, m := range milestones {
		idx := slices.Index(m.TaskIDs, taskID)
		if idx < 0 {
			continue
		}
		if out == nil {
			out = slices.Clone(milestones)
		}
		m.TaskIDs = slices.Delete(slices.Clone(m.TaskIDs), idx, idx+1)
		out[i] = m
	}
	if out == nil {
		return milestones
	}
	return out
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func appendCopy[T any](in []T, v T) []T {
	out := make([]T, len(in), len(in)+1)
	copy(out, in)
	return append(out, v)
}

func replaceAt[T any](in []T, idx int, v T) []T {
	out := slices.Clone(in)
	out[idx] = v
	return out
}

func removeAt[T any](in []T, idx int) []T {
	out := make([]T, 0, len(in)-1)
	out = append(out, in[:idx]...)
	return append(out, in[idx+1:]...)
}

func filterOut[T any](in []T, drop func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !drop(v) {
			out = append(out, v)
		}
	}
	return out
}
