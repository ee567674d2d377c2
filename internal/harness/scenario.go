package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a replayable sequence of project store actions.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Start is the clock reading when the run begins. Zero means
	// testutil.Epoch.
	Start time.Time `yaml:"start,omitempty"`

	// Setup establishes initial state. Every setup step must succeed.
	Setup []ActionStep `yaml:"setup,omitempty"`

	// Flow is the main sequence; steps may expect failures.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// ActionStep is a setup action.
type ActionStep struct {
	Action string                 `yaml:"action"`
	Args   map[string]interface{} `yaml:"args"`
}

// FlowStep is a flow action with an optional expected outcome.
type FlowStep struct {
	Invoke string                 `yaml:"invoke"`
	Args   map[string]interface{} `yaml:"args"`

	// Expect is checked when present; a nil Expect accepts any outcome.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause is the expected outcome of a flow step.
type ExpectClause struct {
	// Case is one of the Case* constants.
	Case string `yaml:"case"`

	// Error, when set, must be a substring of the step's error message.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates trace or final state.
type Assertion struct {
	Type string `yaml:"type"`

	// Action is used by trace_contains and trace_count.
	Action string `yaml:"action,omitempty"`

	// Args are matched as a subset by trace_contains.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Table is projects, tasks or milestones (final_state).
	Table string `yaml:"table,omitempty"`

	// Where selects exactly one row (final_state).
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect is matched as a subset of the selected row (final_state).
	Expect map[string]interface{} `yaml:"expect,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected action order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// IDs are the expected filtered project ids (filtered_projects).
	IDs []string `yaml:"ids,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains    = "trace_contains"
	AssertTraceOrder       = "trace_order"
	AssertTraceCount       = "trace_count"
	AssertFinalState       = "final_state"
	AssertFilteredProjects = "filtered_projects"
	AssertConsistent       = "consistent"
)

// Step outcome cases.
const (
	CaseOK        = "ok"
	CaseNotFound  = "not_found"
	CaseDuplicate = "duplicate"
	CaseInvalid   = "invalid"
	CaseError     = "error"
)

var validCases = map[string]bool{
	CaseOK:        true,
	CaseNotFound:  true,
	CaseDuplicate: true,
	CaseInvalid:   true,
	CaseError:     true,
}

var stateTables = map[string]bool{
	"projects":   true,
	"tasks":      true,
	"milestones": true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields (catches typos like "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if step.Action == "" {
			return fmt.Errorf("setup[%d]: action is required", i)
		}
		if _, ok := actions[step.Action]; !ok {
			return fmt.Errorf("setup[%d]: unknown action %q", i, step.Action)
		}
	}

	for i, step := range s.Flow {
		if step.Invoke == "" {
			return fmt.Errorf("flow[%d]: invoke is required", i)
		}
		if _, ok := actions[step.Invoke]; !ok {
			return fmt.Errorf("flow[%d]: unknown action %q", i, step.Invoke)
		}
		if step.Expect != nil && !validCases[step.Expect.Case] {
			return fmt.Errorf("flow[%d].expect: unknown case %q", i, step.Expect.Case)
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertFinalState:
		if !stateTables[a.Table] {
			return fmt.Errorf("assertions[%d]: table must be projects, tasks or milestones, got %q", index, a.Table)
		}
		if len(a.Where) == 0 {
			return fmt.Errorf("assertions[%d]: where is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	case AssertFilteredProjects, AssertConsistent:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
