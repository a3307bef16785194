package lint

import (
	"log/slog"
	"slices"
	"time"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/log"
)

// Options narrows a single Validate call without touching the registry, so
// one Validator can serve concurrent callers with different settings.
type Options struct {
	// Strict makes warnings fail validation as well as errors.
	Strict bool

	// Disabled lists rule IDs to skip.
	Disabled []string

	// Categories, when non-empty, restricts the run to these categories.
	Categories []string
}

func (o Options) allows(rule Rule) bool {
	if slices.Contains(o.Disabled, rule.ID()) {
		return false
	}
	return len(o.Categories) == 0 || slices.Contains(o.Categories, rule.Category())
}

// Result contains the findings of one validation.
type Result struct {
	// Valid is false if any error was found, or any warning in strict mode.
	Valid bool

	Errors   []Violation
	Warnings []Violation
	Infos    []Violation
}

// Violations returns all findings, errors first.
func (r *Result) Violations() []Violation {
	out := make([]Violation, 0, len(r.Errors)+len(r.Warnings)+len(r.Infos))
	out = append(out, r.Errors...)
	out = append(out, r.Warnings...)
	return append(out, r.Infos...)
}

func (r *Result) add(v Violation) {
	switch v.Severity {
	case SeverityError:
		r.Errors = append(r.Errors, v)
	case SeverityWarning:
		r.Warnings = append(r.Warnings, v)
	default:
		r.Infos = append(r.Infos, v)
	}
}

// Validator runs the rules of a registry against data sheets.
type Validator struct {
	Registry *Registry

	// Logger is used for debug logging. If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives one event per violation. If nil, tracing is disabled.
	Trace log.Logger
}

// NewValidator creates a validator over registry.
func NewValidator(registry *Registry) *Validator {
	return &Validator{Registry: registry}
}

// Validate runs every enabled rule allowed by opts against f.
func (v *Validator) Validate(f *eds.File, opts Options) *Result {
	result := &Result{}

	for _, rule := range v.Registry.EnabledRules() {
		if !opts.allows(rule) {
			continue
		}
		for _, found := range v.Registry.check(rule, f) {
			result.add(found)
			v.trace(f, found)
		}
	}

	result.Valid = len(result.Errors) == 0 && (!opts.Strict || len(result.Warnings) == 0)

	if v.Logger != nil {
		v.Logger.Debug("lint finished",
			"load_id", f.LoadID,
			"source", f.Source,
			"errors", len(result.Errors),
			"warnings", len(result.Warnings),
			"valid", result.Valid)
	}
	return result
}

func (v *Validator) trace(f *eds.File, found Violation) {
	if v.Trace == nil {
		return
	}
	ve := &log.ViolationEvent{
		RuleID:   found.RuleID,
		Severity: found.Severity.String(),
		Message:  found.Message,
	}
	if len(found.Addresses) > 0 {
		index := found.Addresses[0].Index()
		ve.Index = &index
	}
	v.Trace.Log(log.Event{
		Timestamp: time.Now(),
		LoadID:    f.LoadID,
		Source:    f.Source,
		Stage:     log.StageLint,
		Category:  log.CategoryViolation,
		Violation: ve,
	})
}
