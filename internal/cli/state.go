package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/app"
)

// NewStateCommand creates the state command.
func NewStateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show what is stored on disk",
		Long: `List the keys held in the local state database and their sizes.

Only the signed-in user record is ever persisted; workspace caches and
projects live for one command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				entries, err := a.StoredEntries(ctx)
				if err != nil {
					return WrapExitError(ExitCommandError, "read state", err)
				}
				return f.Render(entries, func(w io.Writer) {
					if len(entries) == 0 {
						fmt.Fprintln(w, "No stored state.")
						return
					}
					rows := make([][]string, len(entries))
					for i, e := range entries {
						rows[i] = []string{e.Key, fmt.Sprint(e.Bytes)}
					}
					table(w, []string{"KEY", "BYTES"}, rows)
				})
			})
		},
	}
}
