package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/project"
	"github.com/roach88/volt/internal/templates"
	"github.com/roach88/volt/internal/testutil"
)

// Harness executes one scenario against a fresh project store.
type Harness struct {
	store     *project.Store
	clock     *testutil.ManualClock
	ids       *testutil.SequentialIDs
	templates []model.ProjectTemplate
	logger    *slog.Logger
}

// Option configures Run.
type Option func(*Harness)

// WithLogger sets the logger for step progress. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Create a fresh store with a manual clock at scenario.Start
//  2. Execute setup steps; any failure aborts the run
//  3. Execute flow steps, checking expect clauses
//  4. Evaluate assertions against the trace and final state
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	start := scenario.Start
	if start.IsZero() {
		start = testutil.Epoch
	}
	catalogue, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	clk := testutil.NewManualClockAt(start.UTC())
	h := &Harness{
		store:     project.New(clk),
		clock:     clk,
		ids:       testutil.NewSequentialIDs("id"),
		templates: catalogue,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	defer h.store.Close()
	h.store.SetTemplates(catalogue)

	result := NewResult()
	if err := h.executeSetup(scenario.Setup, result); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}
	if err := h.executeFlow(scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	result.State = h.store.State()
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) executeSetup(setup []ActionStep, result *Result) error {
	for i, step := range setup {
		err := h.apply(step.Action, step.Args)
		result.addTrace(TraceEvent{
			Phase:  "setup",
			Action: step.Action,
			Args:   step.Args,
			Case:   classify(err),
			Error:  errString(err),
		})
		if err != nil {
			return fmt.Errorf("setup[%d] %s: %w", i, step.Action, err)
		}
		h.logger.Info("setup step completed", "step", i, "action", step.Action)
	}
	return nil
}

// executeFlow runs all flow steps. Argument errors abort the run; store
// errors are outcomes checked against the expect clause.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) error {
	for i, step := range flow {
		err := h.apply(step.Invoke, step.Args)
		var argErr *argsError
		if errors.As(err, &argErr) {
			return fmt.Errorf("flow[%d] %s: %w", i, step.Invoke, err)
		}

		got := classify(err)
		result.addTrace(TraceEvent{
			Phase:  "flow",
			Action: step.Invoke,
			Args:   step.Args,
			Case:   got,
			Error:  errString(err),
		})

		if step.Expect != nil {
			if got != step.Expect.Case {
				result.AddError(fmt.Sprintf("flow[%d] %s: expected case %q, got %q (%s)",
					i, step.Invoke, step.Expect.Case, got, errString(err)))
			} else if step.Expect.Error != "" && !strings.Contains(errString(err), step.Expect.Error) {
				result.AddError(fmt.Sprintf("flow[%d] %s: expected error containing %q, got %q",
					i, step.Invoke, step.Expect.Error, errString(err)))
			}
		}

		h.logger.Info("flow step completed", "step", i, "action", step.Invoke, "case", got)
	}
	return nil
}

func (h *Harness) apply(action string, args map[string]interface{}) error {
	fn, ok := actions[action]
	if !ok {
		return &argsError{fmt.Errorf("unknown action %q", action)}
	}
	return fn(h, args)
}

// classify maps a store error to its outcome case.
func classify(err error) string {
	switch {
	case err == nil:
		return CaseOK
	case errors.Is(err, project.ErrNotFound):
		return CaseNotFound
	case errors.Is(err, project.ErrDuplicate):
		return CaseDuplicate
	case errors.Is(err, project.ErrInvalid):
		return CaseInvalid
	default:
		return CaseError
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
