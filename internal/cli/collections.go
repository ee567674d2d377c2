package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/app"
	"github.com/roach88/volt/internal/model"
)

// NewCollectionsCommand creates the collections command group. Every
// subcommand selects the workspace named by --workspace first.
func NewCollectionsCommand(opts *RootOptions) *cobra.Command {
	var workspaceID string

	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"col"},
		Short:   "List, create and delete collections in a workspace",
	}
	cmd.PersistentFlags().StringVarP(&workspaceID, "workspace", "w", "", "workspace id (required)")
	_ = cmd.MarkPersistentFlagRequired("workspace")

	// selected signs in and makes the --workspace workspace current.
	selected := func(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, f *OutputFormatter) error) error {
		return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
			if err := opts.signIn(ctx, a, f); err != nil {
				return err
			}
			if _, err := a.SelectWorkspace(ctx, workspaceID); err != nil {
				return requestError("select workspace", err)
			}
			return fn(ctx, a, f)
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return selected(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				list := a.Workspaces.State().Collections
				return f.Render(list, func(w io.Writer) {
					printCollections(w, list)
				})
			})
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return selected(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				c, err := a.CreateCollection(ctx, workspaceID, args[0], description)
				if err != nil {
					return requestError("create collection", err)
				}
				return f.Render(c, func(w io.Writer) {
					fmt.Fprintf(w, "Created collection %s (%s)\n", c.Name, c.ID)
				})
			})
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "collection description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return selected(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := a.DeleteCollection(ctx, args[0]); err != nil {
					return requestError("delete collection", err)
				}
				return f.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted collection %s\n", args[0])
				})
			})
		},
	})

	return cmd
}

func printCollections(w io.Writer, list []model.Collection) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No collections.")
		return
	}
	rows := make([][]string, len(list))
	for i, c := range list {
		rows[i] = []string{c.ID, c.Name, fmt.Sprint(len(c.Requests)), c.Description}
	}
	table(w, []string{"ID", "NAME", "REQUESTS", "DESCRIPTION"}, rows)
}
