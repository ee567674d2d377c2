package harness

import "github.com/roach88/volt/internal/project"

// TraceEvent records one executed step.
type TraceEvent struct {
	Seq    int                    `json:"seq"`
	Phase  string                 `json:"phase"` // "setup" or "flow"
	Action string                 `json:"action"`
	Args   map[string]interface{} `json:"-"`
	Case   string                 `json:"case"`
	Error  string                 `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace lists every executed step in order.
	Trace []TraceEvent `json:"trace"`

	// Errors describes each failed expectation or assertion.
	Errors []string `json:"errors,omitempty"`

	// State is the final project snapshot.
	State project.State `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(ev TraceEvent) {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
}
