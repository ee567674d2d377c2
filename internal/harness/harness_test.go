package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/volt/internal/model"
)

func mustParse(t *testing.T, src string) *Scenario {
	t.Helper()
	s, err := ParseScenario([]byte(src))
	require.NoError(t, err)
	return s
}

func TestRun_Passes(t *testing.T) {
	s := mustParse(t, `
name: basic
description: "one project, one task"
setup:
  - action: add_project
    args: { id: p1, name: "Checkout", type: api }
flow:
  - invoke: add_task
    args: { id: t1, project_id: p1, status: completed }
    expect: { case: ok }
assertions:
  - type: final_state
    table: projects
    where: { id: p1 }
    expect:
      type: api
      stats: { total_tasks: 1, completed_tasks: 1 }
  - type: consistent
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, TraceEvent{Seq: 2, Phase: "flow", Action: "add_task", Args: s.Flow[0].Args, Case: CaseOK}, result.Trace[1])

	task, ok := result.State.Task("t1")
	require.True(t, ok)
	assert.Equal(t, model.TaskCompleted, task.Status)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	s := mustParse(t, `
name: mismatch
description: "expects the wrong case"
flow:
  - invoke: delete_task
    args: { id: nope }
    expect: { case: ok }
  - invoke: delete_task
    args: { id: nope }
    expect: { case: not_found, error: "milestone" }
assertions:
  - type: consistent
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], `expected case "ok", got "not_found"`)
	assert.Contains(t, result.Errors[1], `expected error containing "milestone"`)
}

func TestRun_NilExpectAcceptsAnyOutcome(t *testing.T) {
	s := mustParse(t, `
name: lenient
description: "no expect clause"
flow:
  - invoke: select_project
    args: { id: ghost }
assertions:
  - type: trace_count
    action: select_project
    count: 1
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
	assert.Equal(t, CaseNotFound, result.Trace[0].Case)
}

func TestRun_SetupFailureAborts(t *testing.T) {
	s := mustParse(t, `
name: bad_setup
description: "setup adds a nameless project"
setup:
  - action: add_project
    args: { id: p1 }
flow:
  - invoke: set_view
    args: { view: list }
assertions:
  - type: consistent
`)

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute setup")
	assert.Contains(t, err.Error(), "setup[0] add_project")
}

func TestRun_MalformedArgsAbort(t *testing.T) {
	tests := []struct {
		name    string
		flow    string
		wantErr string
	}{
		{
			name: "unknown arg",
			flow: `
  - invoke: add_task
    args: { id: t1, project: p1 }`,
			wantErr: `unknown field "project"`,
		},
		{
			name: "bad duration",
			flow: `
  - invoke: advance_clock
    args: { by: soon }`,
			wantErr: "bad args",
		},
		{
			name: "clock backwards",
			flow: `
  - invoke: advance_clock
    args: { by: -1h }`,
			wantErr: "clock cannot move backwards",
		},
		{
			name: "milestone move",
			flow: `
  - invoke: update_milestone
    args: { id: m1, project_id: p2 }`,
			wantErr: "milestones cannot move between projects",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustParse(t, "name: x\ndescription: d\nflow:"+tt.flow+"\nassertions:\n  - type: consistent\n")
			_, err := Run(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to execute flow")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRun_ClockDrivesOverdue(t *testing.T) {
	s := mustParse(t, `
name: overdue
description: "a due date passes"
start: 2026-05-01T08:00:00Z
setup:
  - action: add_project
    args: { id: p1, name: "P" }
  - action: add_task
    args: { id: t1, project_id: p1, due_date: "2026-05-01T09:00:00Z" }
flow:
  - invoke: advance_clock
    args: { by: 2h }
  - invoke: update_task
    args: { id: t1, title: "renamed" }
  - invoke: update_task
    args: { id: t1, status: review }
assertions:
  - type: final_state
    table: projects
    where: { id: p1 }
    expect:
      stats: { overdue_tasks: 1, last_activity: "2026-05-01T10:00:00Z" }
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestRun_AssertionFailuresReported(t *testing.T) {
	s := mustParse(t, `
name: failing_assertions
description: "every assertion misses"
setup:
  - action: add_project
    args: { id: p1, name: "Alpha" }
  - action: add_project
    args: { id: p2, name: "Beta" }
flow:
  - invoke: set_filters
    args: { search: "alp" }
assertions:
  - type: trace_contains
    action: add_project
    args: { id: p3 }
  - type: trace_order
    actions: [set_filters, add_project]
  - type: trace_count
    action: add_project
    count: 1
  - type: final_state
    table: projects
    where: { id: p9 }
    expect: { name: "Gamma" }
  - type: final_state
    table: projects
    where: { status: planning }
    expect: { name: "Alpha" }
  - type: final_state
    table: projects
    where: { id: p1 }
    expect: { name: "Gamma" }
  - type: final_state
    table: projects
    where: { id: p1 }
    expect: { colour: "red" }
  - type: filtered_projects
    ids: [p1, p2]
`)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 8)
	assert.Contains(t, result.Errors[0], "not found in trace")
	assert.Contains(t, result.Errors[1], "should be before")
	assert.Contains(t, result.Errors[2], "2 occurrences")
	assert.Contains(t, result.Errors[3], "row not found")
	assert.Contains(t, result.Errors[4], "2 rows matched")
	assert.Contains(t, result.Errors[5], `field "name" = Alpha`)
	assert.Contains(t, result.Errors[6], `field "colour" to exist`)
	assert.Contains(t, result.Errors[7], "[p1]")
}

func TestSubsetMatch(t *testing.T) {
	actual := normalize(map[string]any{
		"id":    "p1",
		"stats": map[string]any{"total_tasks": 2, "completed_tasks": 1},
		"tags":  []string{"a", "b"},
	})

	tests := []struct {
		name     string
		expected map[string]any
		want     bool
	}{
		{"empty", map[string]any{}, true},
		{"scalar", map[string]any{"id": "p1"}, true},
		{"nested subset", map[string]any{"stats": map[string]any{"total_tasks": 2}}, true},
		{"nested mismatch", map[string]any{"stats": map[string]any{"total_tasks": 3}}, false},
		{"slice equal", map[string]any{"tags": []any{"a", "b"}}, true},
		{"slice is not a subset", map[string]any{"tags": []any{"a"}}, false},
		{"missing key", map[string]any{"name": "x"}, false},
		{"map against scalar", map[string]any{"id": map[string]any{"x": 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subsetMatch(actual, normalize(tt.expected)))
		})
	}
}
