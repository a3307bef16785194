package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes trace events to an slog.Logger.
// Useful for development when you want to see the load trace in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("load_id", event.LoadID),
		slog.String("stage", event.Stage.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}
	if event.Section != "" {
		attrs = append(attrs, slog.String("section", event.Section))
	}

	switch {
	case event.File != nil:
		attrs = append(attrs, slog.Int("sections", event.File.Sections))
		if event.File.Size > 0 {
			attrs = append(attrs, slog.Int64("size", event.File.Size))
		}
		if event.File.Objects > 0 {
			attrs = append(attrs, slog.Int("objects", event.File.Objects))
		}
		if event.File.Duration > 0 {
			attrs = append(attrs, slog.Duration("duration", event.File.Duration))
		}
	case event.Object != nil:
		attrs = append(attrs,
			slog.Uint64("index", uint64(event.Object.Index)),
			slog.Uint64("subindex", uint64(event.Object.Subindex)),
			slog.String("shape", event.Object.Shape),
			slog.Uint64("object_type", uint64(event.Object.ObjectType)),
		)
		if event.Object.Name != "" {
			attrs = append(attrs, slog.String("name", event.Object.Name))
		}
		if event.Object.DataType != nil {
			attrs = append(attrs, slog.Uint64("data_type", uint64(*event.Object.DataType)))
		}
		if event.Object.Entries > 0 {
			attrs = append(attrs, slog.Int("entries", event.Object.Entries))
		}
		if len(event.Object.Skipped) > 0 {
			attrs = append(attrs, slog.Int("skipped", len(event.Object.Skipped)))
		}
	case event.List != nil:
		attrs = append(attrs,
			slog.String("list", event.List.Name),
			slog.Int("declared", event.List.Declared),
			slog.Int("resolved", event.List.Resolved),
		)
	case event.Violation != nil:
		attrs = append(attrs,
			slog.String("rule", event.Violation.RuleID),
			slog.String("severity", event.Violation.Severity),
			slog.String("message", event.Violation.Message),
		)
		if event.Violation.Index != nil {
			attrs = append(attrs, slog.Uint64("index", uint64(*event.Violation.Index)))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_stage", event.Error.Stage.String()),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Kind != "" {
			attrs = append(attrs, slog.String("error_kind", event.Error.Kind))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "eds trace", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
