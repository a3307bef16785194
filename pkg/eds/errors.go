package eds

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package is an *Error whose Kind
// is one of these, so callers can test with errors.Is.
var (
	ErrIO                 = errors.New("eds: read failure")
	ErrFormatting         = errors.New("eds: malformed file")
	ErrMissingSection     = errors.New("eds: missing section")
	ErrMissingField       = errors.New("eds: missing field")
	ErrInvalidNumber      = errors.New("eds: invalid number")
	ErrInvalidFormat      = errors.New("eds: invalid format")
	ErrInvalidObjectType  = errors.New("eds: invalid object type")
	ErrInvalidAccessMode  = errors.New("eds: invalid access mode")
	ErrInvalidDataType    = errors.New("eds: invalid data type")
	ErrPDOAccessMismatch  = errors.New("eds: access mode does not match PDO mapping")
	ErrLimitsNotSupported = errors.New("eds: data type does not support limits")
	ErrInconsistentArray  = errors.New("eds: inconsistent array entry")
	ErrNestedList         = errors.New("eds: nested list object")
	ErrDuplicateObject    = errors.New("eds: duplicate object")
)

// Error is a parse or validation failure with its context.
type Error struct {
	// Kind is one of the Err* sentinels.
	Kind error

	// Section is the section being read, if any.
	Section string

	// Field is the key being read, if any.
	Field string

	// Address is the object being resolved, if any.
	Address *Address

	// Value is the offending raw text or code.
	Value string

	// Line is the source line for formatting errors.
	Line int

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	var ctx []string
	if e.Address != nil {
		ctx = append(ctx, "object "+e.Address.String())
	}
	if e.Section != "" {
		ctx = append(ctx, "section ["+e.Section+"]")
	}
	if e.Field != "" {
		ctx = append(ctx, "field "+e.Field)
	}
	if e.Value != "" {
		ctx = append(ctx, fmt.Sprintf("value %q", e.Value))
	}
	if e.Line > 0 {
		ctx = append(ctx, fmt.Sprintf("line %d", e.Line))
	}
	if len(ctx) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(ctx, ", "))
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName returns a short lower-case name of the error kind, without the
// package prefix.
func KindName(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return strings.TrimPrefix(e.Kind.Error(), "eds: ")
}

func addrPtr(a Address) *Address { return &a }

func missingSection(section string, addr *Address) *Error {
	return &Error{Kind: ErrMissingSection, Section: section, Address: addr}
}

func missingField(section, field string, addr *Address) *Error {
	return &Error{Kind: ErrMissingField, Section: section, Field: field, Address: addr}
}

func decodeError(section, field, raw string, addr *Address, err error) *Error {
	return &Error{Kind: decodeKind(err), Section: section, Field: field, Value: raw, Address: addr, Err: err}
}
