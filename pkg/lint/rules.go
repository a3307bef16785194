package lint

import (
	"fmt"
	"strings"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Severity represents the severity level of a lint finding.
type Severity int

const (
	// SeverityError indicates the data sheet is almost certainly wrong.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be addressed.
	SeverityWarning
	// SeverityInfo indicates an informational note or suggestion.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseSeverity parses a severity name, ignoring case.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	}
	return 0, false
}

// Rule is a check that can be applied to a loaded data sheet.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MAN-001").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category returns the rule category (e.g., "mandatory", "range", "consistency").
	Category() string
	// DefaultSeverity returns the default severity level.
	DefaultSeverity() Severity
	// Check applies the rule and returns any violations.
	Check(f *eds.File) []Violation
}

// Violation is a single finding.
type Violation struct {
	// RuleID is the ID of the rule that was violated.
	RuleID string
	// Severity is the severity level of this violation.
	Severity Severity
	// Message describes what went wrong.
	Message string
	// Addresses lists the objects involved, if any.
	Addresses []eds.Address
	// Suggestion provides a suggested fix (if applicable).
	Suggestion string
}

// String returns a formatted string representation of the violation.
func (v Violation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", v.RuleID, v.Severity, v.Message)

	if len(v.Addresses) > 0 {
		addrs := make([]string, len(v.Addresses))
		for i, a := range v.Addresses {
			addrs[i] = a.String()
		}
		fmt.Fprintf(&sb, " (objects: %s)", strings.Join(addrs, ", "))
	}

	if v.Suggestion != "" {
		fmt.Fprintf(&sb, " -> %s", v.Suggestion)
	}

	return sb.String()
}

// HasErrors returns true if any violation has severity Error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity returns violations at or above the given severity level.
func FilterBySeverity(violations []Violation, minSeverity Severity) []Violation {
	var filtered []Violation
	for _, v := range violations {
		if v.Severity <= minSeverity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// BaseRule provides a default implementation of common Rule methods.
type BaseRule struct {
	id              string
	name            string
	category        string
	defaultSeverity Severity
}

// ID returns the rule ID.
func (r *BaseRule) ID() string { return r.id }

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Category returns the rule category.
func (r *BaseRule) Category() string { return r.category }

// DefaultSeverity returns the default severity.
func (r *BaseRule) DefaultSeverity() Severity { return r.defaultSeverity }

// Violation returns a violation of this rule at its default severity.
func (r *BaseRule) Violation(msg string, addrs ...eds.Address) Violation {
	return Violation{
		RuleID:    r.id,
		Severity:  r.defaultSeverity,
		Message:   msg,
		Addresses: addrs,
	}
}

// NewBaseRule creates a new BaseRule with the given properties.
func NewBaseRule(id, name, category string, severity Severity) *BaseRule {
	return &BaseRule{
		id:              id,
		name:            name,
		category:        category,
		defaultSeverity: severity,
	}
}
