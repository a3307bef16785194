// Package commands implements the eds CLI commands.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/eds-tools/eds-go/pkg/config"
	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/log"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// environment is what every command needs before touching a data sheet:
// the effective settings, a logger, and a parser wired to both.
type environment struct {
	cfg    config.Config
	logger *slog.Logger
	trace  log.Logger
	parser *eds.Parser
	file   *log.FileLogger
}

// newEnvironment loads the config at path (empty for defaults) and builds
// the logger and trace sinks it describes. Logs go to stderr.
func newEnvironment(path string, stderr io.Writer) (*environment, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg, logger: logger}

	var sinks []log.Logger
	if cfg.TraceFile != "" {
		env.file, err = log.NewFileLogger(cfg.TraceFile)
		if err != nil {
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		sinks = append(sinks, env.file)
	}
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		sinks = append(sinks, log.NewSlogAdapter(logger))
	}
	if len(sinks) > 0 {
		env.trace = log.NewMultiLogger(sinks...)
	}

	env.parser = &eds.Parser{Logger: logger, Trace: env.trace}
	return env, nil
}

// Close flushes and closes the trace file, if any.
func (e *environment) Close() error {
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	written, dropped := e.file.Stats()
	e.logger.Debug("trace written", "path", e.file.Path(), "events", written, "dropped", dropped)
	return err
}
