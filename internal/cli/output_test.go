package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/volt/internal/toast"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"id": "ws-1"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"id": "ws-1"}, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error(ErrCodeAuth, "not logged in", map[string]string{"hint": "volt login"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E202", resp.Error.Code)
	assert.Equal(t, "not logged in", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name        string
		verbose     bool
		wantDetails bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}

			require.NoError(t, formatter.Error(ErrCodeRequest, "backend unavailable", "status 502"))
			assert.Contains(t, buf.String(), "Error [E203]: backend unavailable")
			if tt.wantDetails {
				assert.Contains(t, buf.String(), "Details: status 502")
			} else {
				assert.NotContains(t, buf.String(), "Details:")
			}
		})
	}
}

func TestOutputFormatter_Render(t *testing.T) {
	text := func(w io.Writer) { fmt.Fprintln(w, "2 workspaces") }

	buf := &bytes.Buffer{}
	require.NoError(t, (&OutputFormatter{Format: "text", Writer: buf}).Render([]string{"a", "b"}, text))
	assert.Equal(t, "2 workspaces\n", buf.String())

	buf.Reset()
	require.NoError(t, (&OutputFormatter{Format: "json", Writer: buf}).Render([]string{"a", "b"}, text))
	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, []any{"a", "b"}, resp.Data)
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}

	formatter.VerboseLog("using %s", "state.db")
	assert.Empty(t, out.String())
	assert.Equal(t, "using state.db\n", errOut.String())

	formatter.Verbose = false
	formatter.VerboseLog("dropped")
	assert.Equal(t, "using state.db\n", errOut.String())

	fallback := &OutputFormatter{Writer: out}
	assert.Same(t, out, fallback.GetErrWriter())
}

func TestExitError(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapExitError(ExitFailure, "list workspaces", cause).WithErrCode(ErrCodeRequest)

	assert.Equal(t, "list workspaces: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("command: %w", err)
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Equal(t, ErrCodeRequest, GetErrCode(wrapped))
	assert.False(t, reported(wrapped))

	plain := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, "bad flag", plain.Error())
	assert.Equal(t, ErrCodeGeneric, GetErrCode(plain))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("other")))
	assert.Equal(t, ErrCodeGeneric, GetErrCode(errors.New("other")))
}

func TestTable(t *testing.T) {
	buf := &bytes.Buffer{}
	table(buf, []string{"ID", "NAME"}, [][]string{
		{"ws-1", "Payments"},
		{"workspace-22", "Search"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID            NAME", lines[0])
	assert.Equal(t, "ws-1          Payments", lines[1])
	assert.Equal(t, "workspace-22  Search", lines[2])
}

func TestPrintToasts(t *testing.T) {
	buf := &bytes.Buffer{}
	printToasts(buf, []toast.Toast{
		{ID: "1", Kind: toast.KindSuccess, Message: "Collection created"},
		{ID: "2", Kind: toast.KindError, Message: "Failed to load collections: boom"},
	})

	assert.Equal(t, "[success] Collection created\n[error] Failed to load collections: boom\n", buf.String())
}
