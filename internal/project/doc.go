// Package project holds projects, tasks and milestones for the active
// session.
//
// # Normalized storage
//
// Tasks and milestones are stored exactly once, in flat registries ordered by
// insertion. A project's embedded task and milestone lists are derived on
// read (State.Project, State.Views): the tasks of project P are the
// subsequence of the task registry whose ProjectID is P.ID. There is no
// second copy to drift out of sync.
//
// # Derived stats
//
// The task counters in model.ProjectStats are written only by this package:
//
//   - AddTask and DeleteTask recount total, completed and overdue tasks of
//     the owning project.
//   - UpdateTask recounts completed and overdue tasks when the status or the
//     due date changed (or the task moved project); other edits leave the
//     counters as they were.
//   - Every task mutation stamps LastActivity.
//
// Overdue means a due date strictly before the mutation time and a status
// other than completed. Counts are a snapshot as of the last mutation; time
// passing alone does not move a task into the overdue count.
//
// Milestone edits never feed project stats.
//
// Bulk setters (SetProjects, SetTasks, SetMilestones) replace state without
// recounting; hydrate with Hydrate when the server sends projects with their
// tasks embedded.
//
// # Unknown ids
//
// Mutators addressing an unknown id leave the snapshot untouched, publish
// nothing and return an error matching ErrNotFound.
package project
