package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/app"
	"github.com/roach88/volt/internal/model"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "List and create workspaces",
	}
	cmd.AddCommand(newWorkspacesListCommand(opts))
	cmd.AddCommand(newWorkspacesCreateCommand(opts))
	return cmd
}

func newWorkspacesListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := opts.signIn(ctx, a, f); err != nil {
					return err
				}
				list, err := a.LoadWorkspaces(ctx)
				if err != nil {
					return requestError("list workspaces", err)
				}
				return f.Render(list, func(w io.Writer) {
					printWorkspaces(w, list)
				})
			})
		},
	}
}

func newWorkspacesCreateCommand(opts *RootOptions) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := opts.signIn(ctx, a, f); err != nil {
					return err
				}
				ws, err := a.CreateWorkspace(ctx, args[0], description)
				if err != nil {
					return requestError("create workspace", err)
				}
				return f.Render(ws, func(w io.Writer) {
					fmt.Fprintf(w, "Created workspace %s (%s)\n", ws.Name, ws.ID)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "workspace description")
	return cmd
}

func printWorkspaces(w io.Writer, list []model.Workspace) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No workspaces.")
		return
	}
	rows := make([][]string, len(list))
	for i, ws := range list {
		rows[i] = []string{ws.ID, ws.Name, fmt.Sprint(len(ws.Members)), ws.Description}
	}
	table(w, []string{"ID", "NAME", "MEMBERS", "DESCRIPTION"}, rows)
}
