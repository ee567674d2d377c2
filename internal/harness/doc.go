// Package harness replays project scenarios against the project store.
//
// A scenario is a YAML file describing setup actions, a flow of actions with
// expected outcomes, and assertions over the resulting trace and the final
// project state. Every run uses a fresh store, a manual clock starting at the
// scenario's start time and sequential ids, so the same scenario always
// produces the same trace and state.
//
// # Scenario Format
//
//	name: task_lifecycle
//	description: "What this scenario validates"
//	start: 2026-01-01T12:00:00Z
//	setup:
//	  - action: add_project
//	    args: { id: p1, name: "Checkout API", type: api }
//	flow:
//	  - invoke: add_task
//	    args: { id: t1, project_id: p1, status: todo }
//	    expect:
//	      case: ok
//	  - invoke: advance_clock
//	    args: { by: 12h }
//	assertions:
//	  - type: final_state
//	    table: projects
//	    where: { id: p1 }
//	    expect: { stats: { total_tasks: 1 } }
//
// # Actions
//
// Projects: add_project, update_project, delete_project, select_project.
// Tasks: add_task, update_task, delete_task. Milestones: add_milestone,
// update_milestone, delete_milestone. Settings: set_filters, set_view.
// Others: advance_clock, instantiate_template.
//
// Each step completes with one of the cases ok, not_found, duplicate,
// invalid or error. Setup steps must complete ok.
//
// # Assertion Types
//
//   - trace_contains: an action appears in the trace with matching args
//   - trace_order: actions appear in the given order
//   - trace_count: an action appears exactly N times
//   - final_state: exactly one row of projects, tasks or milestones matches
//     where, and contains expect (nested maps match as subsets)
//   - filtered_projects: the filtered project ids, in order
//   - consistent: the final state passes State.CheckConsistency
//
// # Golden Files
//
// RunWithGolden renders the trace and a summary of the final state as
// indented JSON and compares it with testdata/golden/<name>.golden.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
