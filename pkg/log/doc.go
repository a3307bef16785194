// Package log provides a structured load trace for EDS parsing.
//
// This package defines the Logger interface and Event types for capturing
// what happens while a data sheet is loaded: reading the section store,
// decoding header blocks, resolving objects and assembling object lists.
// It is separate from operational logging (slog) - the trace is a complete
// machine-readable record for debugging and analysis.
//
// # Basic Usage
//
// Callers configure tracing by providing a Logger implementation:
//
//	// For development: log to console via slog
//	parser.Trace = log.NewSlogAdapter(slog.Default())
//
//	// For tooling: write to binary file
//	parser.Trace, _ = log.NewFileLogger("/tmp/device.etrace")
//
//	// Both: use MultiLogger
//	parser.Trace = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at several stages:
//   - Read: the section store was built (FileEvent)
//   - Resolve: one object was resolved (ObjectEvent)
//   - Assemble: one object list was completed (ListEvent)
//   - Lint: a rule reported a violation (ViolationEvent)
//
// Failures at any stage carry an ErrorEventData payload.
//
// # File Format
//
// Trace files use CBOR encoding with the .etrace extension. The eds CLI
// "trace" command provides viewing and filtering.
package log
