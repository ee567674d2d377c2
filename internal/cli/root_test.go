package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "volt", cmd.Use)
	assert.Contains(t, cmd.Long, "workspaces")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"login"}, {"logout"}, {"whoami"},
		{"workspaces", "list"}, {"workspaces", "create"},
		{"collections", "list"}, {"collections", "create"}, {"collections", "delete"},
		{"templates", "list"}, {"templates", "show"},
		{"state"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
}

func TestCollectionsRequireWorkspace(t *testing.T) {
	cmd := NewRootCommand()
	collections, _, err := cmd.Find([]string{"collections"})
	require.NoError(t, err)

	flag := collections.PersistentFlags().Lookup("workspace")
	require.NotNil(t, flag)
	assert.Equal(t, "w", flag.Shorthand)
}

func TestTemplatesShowFlags(t *testing.T) {
	cmd := NewRootCommand()
	show, _, err := cmd.Find([]string{"templates", "show"})
	require.NoError(t, err)
	require.NotNil(t, show.Flags().Lookup("start"))
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "templates", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeInput, GetErrCode(err))
}

func TestExecute_ReportsErrors(t *testing.T) {
	opts := &RootOptions{}
	cmd := NewRootCommandWith(opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "json", "test", "/nonexistent/scenarios"})

	code := Execute(context.Background(), cmd, opts)
	assert.Equal(t, ExitCommandError, code)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "scenarios directory not found")
}

func TestExecute_Success(t *testing.T) {
	opts := &RootOptions{}
	cmd := NewRootCommandWith(opts)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"test", "--help"})

	assert.Equal(t, ExitSuccess, Execute(context.Background(), cmd, opts))
}
