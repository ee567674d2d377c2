package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/app"
	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/project"
)

// NewTemplatesCommand creates the templates command group.
func NewTemplatesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse project templates",
	}
	cmd.AddCommand(newTemplatesListCommand(opts))
	cmd.AddCommand(newTemplatesShowCommand(opts))
	return cmd
}

func newTemplatesListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List project templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				list := a.Templates()
				return f.Render(list, func(w io.Writer) {
					rows := make([][]string, len(list))
					for i, t := range list {
						rows[i] = []string{
							t.ID, t.Name, string(t.Type),
							fmt.Sprint(len(t.DefaultTasks)),
							fmt.Sprint(len(t.DefaultMilestones)),
							fmt.Sprintf("%dd", t.EstimatedDuration),
						}
					}
					table(w, []string{"ID", "NAME", "TYPE", "TASKS", "MILESTONES", "DURATION"}, rows)
				})
			})
		},
	}
}

func newTemplatesShowCommand(opts *RootOptions) *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Preview the project a template creates",
		Long: `Instantiate a template as a new project and print it.

--start accepts most date formats ("2026-03-01", "March 1 2026",
"03/01/2026 09:00"). Dates without a zone are UTC. Defaults to now.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				when := time.Now().UTC()
				if start != "" {
					t, err := dateparse.ParseIn(start, time.UTC)
					if err != nil {
						return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --start %q", start), err).WithErrCode(ErrCodeInput)
					}
					when = t
				}

				view, err := a.CreateProjectFromTemplate(args[0], when)
				if errors.Is(err, project.ErrNotFound) {
					return WrapExitError(ExitFailure, "show template", err).WithErrCode(ErrCodeNotFound)
				}
				if err != nil {
					return WrapExitError(ExitFailure, "show template", err)
				}
				return f.Render(view, func(w io.Writer) {
					printProject(w, view)
				})
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "project start date")
	return cmd
}

func printProject(w io.Writer, v model.ProjectView) {
	st := newStyles(w)
	fmt.Fprintln(w, st.header.Render(v.Name))
	due := "-"
	if v.DueDate != nil {
		due = v.DueDate.Format(time.DateOnly)
	}
	fmt.Fprintf(w, "%s  %s  %s to %s\n", v.Type, v.Status, v.StartDate.Format(time.DateOnly), due)
	if len(v.Tags) > 0 {
		fmt.Fprintln(w, st.muted.Render(strings.Join(v.Tags, ", ")))
	}

	fmt.Fprintln(w)
	rows := make([][]string, len(v.Tasks))
	for i, t := range v.Tasks {
		rows[i] = []string{t.Title, string(t.Status), string(t.Priority)}
	}
	table(w, []string{"TASK", "STATUS", "PRIORITY"}, rows)

	fmt.Fprintln(w)
	rows = make([][]string, len(v.Milestones))
	for i, m := range v.Milestones {
		rows[i] = []string{m.Title, m.DueDate.Format(time.DateOnly), string(m.Status)}
	}
	table(w, []string{"MILESTONE", "DUE", "STATUS"}, rows)
}
