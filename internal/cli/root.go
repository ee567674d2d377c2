package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/volt/internal/api"
	"github.com/roach88/volt/internal/app"
	"github.com/roach88/volt/internal/config"
)

// Credential environment variables. The session cookie lives only as long as
// one process, so commands that talk to the backend sign in first when both
// are set.
const (
	EnvEmail    = "VOLT_EMAIL"
	EnvPassword = "VOLT_PASSWORD"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// AppOptions are passed to app.New.
	AppOptions []app.Option
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the volt CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(&RootOptions{})
}

// NewRootCommandWith creates the root command bound to opts.
func NewRootCommandWith(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "volt",
		Short: "Volt - API workspace client",
		Long:  "Command-line client for Volt workspaces, collections and project templates.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats)).WithErrCode(ErrCodeInput)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/volt/volt.yaml)")

	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewWorkspacesCommand(opts))
	cmd.AddCommand(NewCollectionsCommand(opts))
	cmd.AddCommand(NewTemplatesCommand(opts))
	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// Execute runs cmd and reports any error through the output formatter.
// It returns the process exit code.
func Execute(ctx context.Context, cmd *cobra.Command, opts *RootOptions) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if reported(err) {
		return GetExitCode(err)
	}
	f := opts.formatter(cmd)
	_ = f.Error(GetErrCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) getenv(key string) string {
	if o.Getenv != nil {
		return o.Getenv(key)
	}
	return os.Getenv(key)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// newLogger builds the CLI's slog handler on w. --verbose forces debug.
func newLogger(w io.Writer, verbose bool, level slog.Level) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// withApp loads configuration, opens an app session for the duration of fn
// and prints queued toasts in verbose text mode.
func (o *RootOptions) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App, f *OutputFormatter) error) error {
	f := o.formatter(cmd)
	cfg, err := config.Loader{Getenv: o.getenv}.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err).WithErrCode(ErrCodeConfig)
	}
	logger := newLogger(cmd.ErrOrStderr(), o.Verbose, cfg.Log.SlogLevel())
	f.VerboseLog("api %s, storage %s", cfg.API.BaseURL, cfg.Storage.Path)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := append([]app.Option{app.WithLogger(logger)}, o.AppOptions...)
	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "start session", err).WithErrCode(ErrCodeConfig)
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			logger.Warn("close session", "error", cerr)
		}
	}()

	err = fn(ctx, a, f)
	if o.Verbose && o.Format != "json" {
		printToasts(f.GetErrWriter(), a.Toasts.Toasts())
	}
	return err
}

// signIn logs in with the credential environment variables when both are
// set. Without them the backend session, if any, is whatever the server
// already accepts.
func (o *RootOptions) signIn(ctx context.Context, a *app.App, f *OutputFormatter) error {
	email, password := o.getenv(EnvEmail), o.getenv(EnvPassword)
	if email == "" || password == "" {
		f.VerboseLog("%s/%s not set, using no credentials", EnvEmail, EnvPassword)
		return nil
	}
	if _, err := a.Login(ctx, email, password); err != nil {
		return requestError("login", err)
	}
	return nil
}

// requestError maps a transport error to an ExitError.
func requestError(what string, err error) error {
	switch {
	case api.IsUnauthorized(err):
		return WrapExitError(ExitFailure, what, err).WithErrCode(ErrCodeAuth)
	case api.IsNotFound(err):
		return WrapExitError(ExitFailure, what, err).WithErrCode(ErrCodeNotFound)
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return WrapExitError(ExitFailure, what, err).WithErrCode(ErrCodeRequest)
}
