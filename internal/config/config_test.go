package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := Loader{Getenv: envOf(map[string]string{"HOME": home})}.Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(home, ".config", "volt", "state.db"), cfg.Storage.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_XDGConfigHome(t *testing.T) {
	xdg := t.TempDir()
	writeFile(t, filepath.Join(xdg, "volt", "volt.yaml"), "log:\n  level: debug\n")

	cfg, err := Loader{Getenv: envOf(map[string]string{"XDG_CONFIG_HOME": xdg, "HOME": "/nonexistent"})}.Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "volt", "state.db"), cfg.Storage.Path)
	assert.Equal(t, "debug", cfg.Log.Level, "default config file is read when present")
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volt.yaml")
	writeFile(t, path, `
api:
  base_url: https://volt.example.com
  timeout: 5s
storage:
  path: /tmp/volt-test.db
log:
  level: warn
`)

	cfg, err := Loader{Getenv: envOf(nil)}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://volt.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/volt-test.db", cfg.Storage.Path)
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volt.yaml")
	writeFile(t, path, "api:\n  base_url: http://10.0.0.5:9000\n")

	cfg, err := Loader{Getenv: envOf(map[string]string{"HOME": dir})}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volt.yaml")
	writeFile(t, path, "")

	cfg, err := Loader{Getenv: envOf(map[string]string{"HOME": dir})}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().API, cfg.API)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volt.yaml")
	writeFile(t, path, "api:\n  base_url: https://file.example.com\nstorage:\n  path: /from/file.db\n")

	cfg, err := Loader{Getenv: envOf(map[string]string{
		EnvAPIURL: "https://env.example.com",
		EnvDB:     "/from/env.db",
	})}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "/from/env.db", cfg.Storage.Path)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	env := envOf(map[string]string{"HOME": dir})

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "api:\n  base_uri: http://x\n", "parse config"},
		{"bad yaml", "api: [\n", "parse config"},
		{"bad duration", "api:\n  timeout: soon\n", "parse config"},
		{"bad scheme", "api:\n  base_url: ftp://x\n", "invalid config"},
		{"bad level", "log:\n  level: loud\n", "invalid config"},
		{"zero timeout", "api:\n  timeout: 0s\n", "invalid config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, path, tt.content)
			_, err := Loader{Getenv: env}.Load(path)
			assert.ErrorContains(t, err, tt.want)
		})
	}

	_, err := Loader{Getenv: env}.Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read config")

	_, err = Loader{Getenv: envOf(nil)}.Load("")
	assert.ErrorContains(t, err, "resolve storage path")
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Log{Level: "debug"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Log{Level: "info"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Log{Level: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Log{Level: ""}.SlogLevel())
}
