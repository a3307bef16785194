// Package config loads the settings of the eds command from a YAML or TOML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/eds-tools/eds-go/pkg/lint"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "EDS_LOG_LEVEL"
	EnvLogFormat = "EDS_LOG_FORMAT"
	EnvTraceFile = "EDS_TRACE_FILE"
	EnvJobs      = "EDS_JOBS"
)

// ErrUnknownFormat is returned for config files that are neither YAML nor TOML.
var ErrUnknownFormat = errors.New("unknown config file format")

// Config holds the command settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// TraceFile, when set, receives a CBOR load trace.
	TraceFile string `yaml:"trace_file" toml:"trace_file"`

	// Jobs bounds how many files are validated at once.
	Jobs int `yaml:"jobs" toml:"jobs"`

	Lint LintConfig `yaml:"lint" toml:"lint"`
}

// LintConfig selects and tunes lint rules.
type LintConfig struct {
	Strict     bool     `yaml:"strict" toml:"strict"`
	Disabled   []string `yaml:"disabled" toml:"disabled"`
	Categories []string `yaml:"categories" toml:"categories"`

	// Severity maps rule IDs to error, warning or info.
	Severity map[string]string `yaml:"severity" toml:"severity"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		Jobs:      runtime.NumCPU(),
	}
}

// Load reads the config file at path, fills unset fields with defaults,
// applies environment overrides and validates the result. An empty path
// yields the defaults plus the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		fromFile, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = merge(cfg, fromFile)
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// merge overlays the set fields of file on base.
func merge(base, file Config) Config {
	if file.LogLevel != "" {
		base.LogLevel = file.LogLevel
	}
	if file.LogFormat != "" {
		base.LogFormat = file.LogFormat
	}
	if file.TraceFile != "" {
		base.TraceFile = file.TraceFile
	}
	if file.Jobs != 0 {
		base.Jobs = file.Jobs
	}
	base.Lint = file.Lint
	return base
}

// ApplyEnv overrides settings from the environment as read by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvTraceFile); v != "" {
		c.TraceFile = v
	}
	if v := getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJobs, err)
		}
		c.Jobs = n
	}
	return nil
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for id, sev := range c.Lint.Severity {
		if _, ok := lint.ParseSeverity(sev); !ok {
			return fmt.Errorf("lint severity for %s: unknown severity %q", id, sev)
		}
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the config, writing to w.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// LintOptions returns the per-run lint options.
func (c Config) LintOptions() lint.Options {
	return lint.Options{
		Strict:     c.Lint.Strict,
		Disabled:   c.Lint.Disabled,
		Categories: c.Lint.Categories,
	}
}

// ApplySeverities installs the configured severity overrides in registry.
func (c Config) ApplySeverities(registry *lint.Registry) {
	for id, name := range c.Lint.Severity {
		if sev, ok := lint.ParseSeverity(name); ok {
			registry.SetSeverity(id, sev)
		}
	}
}
