package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/app"
	"github.com/roach88/volt/internal/model"
)

// NewLoginCommand creates the login command.
func NewLoginCommand(opts *RootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the user",
		Long: `Sign in to the backend and store the user record locally.

Credentials default to $VOLT_EMAIL and $VOLT_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = opts.getenv(EnvEmail)
			}
			if password == "" {
				password = opts.getenv(EnvPassword)
			}
			if email == "" || password == "" {
				return NewExitError(ExitCommandError, "email and password are required").WithErrCode(ErrCodeInput)
			}

			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				user, err := a.Login(ctx, email, password)
				if err != nil {
					return requestError("login", err)
				}
				return f.Render(user, func(w io.Writer) {
					fmt.Fprintf(w, "Logged in as %s\n", describeUser(*user))
				})
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if err := a.Logout(ctx); err != nil {
					return WrapExitError(ExitCommandError, "logout", err)
				}
				return f.Render(map[string]bool{"logged_out": true}, func(w io.Writer) {
					fmt.Fprintln(w, "Logged out")
				})
			})
		},
	}
}

// NewWhoamiCommand creates the whoami command.
func NewWhoamiCommand(opts *RootOptions) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(cmd, func(ctx context.Context, a *app.App, f *OutputFormatter) error {
				if refresh {
					if err := opts.signIn(ctx, a, f); err != nil {
						return err
					}
					if _, err := a.Refresh(ctx); err != nil {
						return requestError("refresh user", err)
					}
				}
				user := a.Session.State().User
				if user == nil {
					return NewExitError(ExitFailure, "not logged in").WithErrCode(ErrCodeAuth)
				}
				return f.Render(user, func(w io.Writer) {
					fmt.Fprintln(w, describeUser(*user))
				})
			})
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "ask the server who the session belongs to")
	return cmd
}

func describeUser(u model.User) string {
	if u.Username == "" {
		return u.Email
	}
	return fmt.Sprintf("%s <%s>", u.Username, u.Email)
}
