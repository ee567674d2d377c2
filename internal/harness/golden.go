package harness

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the golden rendering of a run: the trace plus a summary of the
// final project state.
type Snapshot struct {
	Scenario       string            `json:"scenario"`
	Pass           bool              `json:"pass"`
	Trace          []TraceEvent      `json:"trace"`
	Projects       []ProjectSnapshot `json:"projects"`
	CurrentProject string            `json:"current_project,omitempty"`
	View           string            `json:"view"`
	Filtered       []string          `json:"filtered"`
}

// ProjectSnapshot summarizes one project. Tasks render as "<id> <status>".
type ProjectSnapshot struct {
	ID             string    `json:"id"`
	Status         string    `json:"status"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	OverdueTasks   int       `json:"overdue_tasks"`
	LastActivity   time.Time `json:"last_activity"`
	Tasks          []string  `json:"tasks"`
	Milestones     []string  `json:"milestones"`
}

// NewSnapshot summarizes result for golden comparison.
func NewSnapshot(name string, result *Result) Snapshot {
	st := result.State
	s := Snapshot{
		Scenario:       name,
		Pass:           result.Pass,
		Trace:          result.Trace,
		Projects:       []ProjectSnapshot{},
		CurrentProject: st.CurrentProjectID,
		View:           string(st.View),
		Filtered:       []string{},
	}
	for _, v := range st.Views() {
		ps := ProjectSnapshot{
			ID:             v.ID,
			Status:         string(v.Status),
			TotalTasks:     v.Stats.TotalTasks,
			CompletedTasks: v.Stats.CompletedTasks,
			OverdueTasks:   v.Stats.OverdueTasks,
			LastActivity:   v.Stats.LastActivity,
			Tasks:          []string{},
			Milestones:     []string{},
		}
		for _, t := range v.Tasks {
			ps.Tasks = append(ps.Tasks, fmt.Sprintf("%s %s", t.ID, t.Status))
		}
		for _, m := range v.Milestones {
			ps.Milestones = append(ps.Milestones, m.ID)
		}
		s.Projects = append(s.Projects, ps)
	}
	for _, p := range st.FilteredProjects() {
		s.Filtered = append(s.Filtered, p.ID)
	}
	return s
}

// Marshal renders the snapshot as indented JSON with a trailing newline.
func (s Snapshot) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return result, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Marshal()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
