// Package config provides functionality for loading and validating the
// optional TOML configuration file. The file supplies defaults for the
// library search path, report output, and logging; command-line flags always
// take precedence over file values.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pelletier/go-toml/v2"

	"github.com/isseis/go-symbol-audit/internal/common"
)

// Error definitions for the config package
var (
	// ErrInvalidConfigPath is returned when the config file path is invalid
	ErrInvalidConfigPath = errors.New("invalid config file path")

	// ErrInvalidOutputFormat is returned for an unrecognized output value
	ErrInvalidOutputFormat = errors.New("invalid output format - valid options are: text, json")

	// ErrInvalidLogLevel is returned for an unrecognized log_level value
	ErrInvalidLogLevel = errors.New("invalid log level - valid options are: debug, info, warn, error")
)

// Config holds tool-level defaults loaded from a TOML file.
type Config struct {
	// LibPath lists directories searched for shared libraries, in order.
	// Entries given via --libpath are appended after these.
	LibPath []string `toml:"libpath"`

	// Output selects the report format: "text" (default) or "json".
	Output string `toml:"output"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `toml:"log_level"`

	// LogDir, when set, enables the per-run JSON log file.
	LogDir string `toml:"log_dir"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		Output:   "text",
		LogLevel: "info",
	}
}

// Loader handles loading and validating configurations
type Loader struct {
	fs common.FileSystem
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return NewLoaderWithFS(common.NewDefaultFileSystem())
}

// NewLoaderWithFS creates a new config loader with a custom FileSystem
func NewLoaderWithFS(fs common.FileSystem) *Loader {
	return &Loader{
		fs: fs,
	}
}

// Load reads and validates the configuration file at path. Unset fields
// fall back to the built-in defaults.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrInvalidConfigPath
	}

	content, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum-valued fields.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel converts the configured log level string to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}
