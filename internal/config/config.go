// Package config loads volt.yaml.
//
// Every field is optional. Resolution order, later wins: built-in defaults,
// the YAML file, then the VOLT_API_URL and VOLT_DB environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/roach88/volt/internal/api"
)

// Environment overrides.
const (
	EnvAPIURL = "VOLT_API_URL"
	EnvDB     = "VOLT_DB"
)

// Config is the client configuration.
type Config struct {
	API     api.Config `yaml:"api"`
	Storage Storage    `yaml:"storage"`
	Log     Log        `yaml:"log"`
}

// Storage locates the durable client store.
type Storage struct {
	// Path of the SQLite file. Defaults to <config dir>/volt/state.db.
	Path string `yaml:"path"`
}

// Log configures the CLI's slog handler.
type Log struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration. Storage.Path is left empty and
// resolved by Load.
func Default() Config {
	return Config{
		API: api.DefaultConfig(),
		Log: Log{Level: "info"},
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.API),
		validation.Field(&c.Storage),
		validation.Field(&c.Log),
	)
}

// Validate requires a path.
func (s Storage) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Path, validation.Required),
	)
}

// Validate checks the level name.
func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
	)
}

// SlogLevel maps Level to slog. Unknown names map to info.
func (l Log) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Loader resolves configuration against an environment.
type Loader struct {
	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// Load resolves configuration with the process environment.
func Load(path string) (Config, error) {
	return Loader{}.Load(path)
}

// Load reads path if given, or the default config file if it exists, then
// applies environment overrides and validates the result. An explicit path
// that does not exist is an error.
func (l Loader) Load(path string) (Config, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()
	explicit := path != ""
	if !explicit {
		dir, err := configDir(getenv)
		if err == nil {
			path = filepath.Join(dir, "volt", "volt.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := getenv(EnvAPIURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := getenv(EnvDB); v != "" {
		cfg.Storage.Path = v
	}
	if cfg.Storage.Path == "" {
		dir, err := configDir(getenv)
		if err != nil {
			return Config{}, fmt.Errorf("resolve storage path: %w", err)
		}
		cfg.Storage.Path = filepath.Join(dir, "volt", "state.db")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// decode overlays YAML onto cfg, rejecting unknown keys.
func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// configDir is $XDG_CONFIG_HOME, falling back to $HOME/.config.
func configDir(getenv func(string) string) (string, error) {
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	if home := getenv("HOME"); home != "" {
		return filepath.Join(home, ".config"), nil
	}
	return "", errors.New("neither XDG_CONFIG_HOME nor HOME is set")
}
