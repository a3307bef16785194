package log

import (
	"strings"
	"time"
)

// Event represents one load trace event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// LoadID uniquely identifies one load of one file (UUID).
	LoadID string `cbor:"2,keyasint"`

	// Source is the file path or other label of the input.
	Source string `cbor:"3,keyasint,omitempty"`

	// Stage where the event was captured.
	Stage Stage `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Section is the data sheet section involved, if any.
	Section string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	File      *FileEvent      `cbor:"10,keyasint,omitempty"` // Read stage
	Object    *ObjectEvent    `cbor:"11,keyasint,omitempty"` // Resolve stage
	List      *ListEvent      `cbor:"12,keyasint,omitempty"` // Assemble stage
	Violation *ViolationEvent `cbor:"13,keyasint,omitempty"` // Lint stage
	Error     *ErrorEventData `cbor:"14,keyasint,omitempty"` // Any stage
}

// Stage indicates which part of the load pipeline captured the event.
type Stage uint8

const (
	// StageRead is the section store ingestion.
	StageRead Stage = 0
	// StageHeader is the decoding of FileInfo, DeviceInfo and friends.
	StageHeader Stage = 1
	// StageResolve is per-object resolution.
	StageResolve Stage = 2
	// StageAssemble is object list assembly.
	StageAssemble Stage = 3
	// StageLint is rule checking on a loaded file.
	StageLint Stage = 4
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageRead:
		return "READ"
	case StageHeader:
		return "HEADER"
	case StageResolve:
		return "RESOLVE"
	case StageAssemble:
		return "ASSEMBLE"
	case StageLint:
		return "LINT"
	default:
		return "UNKNOWN"
	}
}

// ParseStage parses a stage name as returned by String, ignoring case.
func ParseStage(s string) (Stage, bool) {
	for st := StageRead; st <= StageLint; st++ {
		if strings.EqualFold(st.String(), s) {
			return st, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryFile indicates a whole-file event.
	CategoryFile Category = 0
	// CategoryObject indicates a resolved object.
	CategoryObject Category = 1
	// CategoryList indicates an assembled object list.
	CategoryList Category = 2
	// CategoryViolation indicates a lint finding.
	CategoryViolation Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryFile:
		return "FILE"
	case CategoryObject:
		return "OBJECT"
	case CategoryList:
		return "LIST"
	case CategoryViolation:
		return "VIOLATION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as returned by String, ignoring case.
func ParseCategory(s string) (Category, bool) {
	for c := CategoryFile; c <= CategoryError; c++ {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// FileEvent captures the result of reading the section store.
type FileEvent struct {
	// Sections is the number of sections in the store.
	Sections int `cbor:"1,keyasint"`

	// Size is the input size in bytes, when known.
	Size int64 `cbor:"2,keyasint,omitempty"`

	// Objects is the total number of top-level objects, set once assembly
	// has completed.
	Objects int `cbor:"3,keyasint,omitempty"`

	// Duration of the stage, stored as nanoseconds.
	Duration time.Duration `cbor:"4,keyasint,omitempty"`
}

// ObjectEvent captures one resolved dictionary object.
type ObjectEvent struct {
	Index    uint16 `cbor:"1,keyasint"`
	Subindex uint8  `cbor:"2,keyasint"`

	// Name is the ParameterName of the object.
	Name string `cbor:"3,keyasint,omitempty"`

	// ObjectType is the raw object type code.
	ObjectType uint8 `cbor:"4,keyasint"`

	// Shape names the resolved object shape (VARIABLE, ARRAY, ...).
	Shape string `cbor:"5,keyasint"`

	// DataType is the raw data type code, for shapes that carry one.
	DataType *uint16 `cbor:"6,keyasint,omitempty"`

	// Entries is the number of expanded children for arrays.
	Entries int `cbor:"7,keyasint,omitempty"`

	// Skipped lists subindexes whose sections were absent.
	Skipped []uint8 `cbor:"8,keyasint,omitempty"`
}

// ListEvent captures one assembled top-level object list.
type ListEvent struct {
	// Name is the list section name (MandatoryObjects, ...).
	Name string `cbor:"1,keyasint"`

	// Declared is the SupportedObjects count.
	Declared int `cbor:"2,keyasint"`

	// Resolved is the number of objects actually inserted.
	Resolved int `cbor:"3,keyasint"`
}

// ViolationEvent captures one lint finding.
type ViolationEvent struct {
	RuleID   string `cbor:"1,keyasint"`
	Severity string `cbor:"2,keyasint"`
	Message  string `cbor:"3,keyasint"`

	// Index is the object index the finding refers to, if any.
	Index *uint16 `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any stage.
type ErrorEventData struct {
	// Stage where the error occurred.
	Stage Stage `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Kind is the error kind (missing section, invalid number, ...).
	Kind string `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}
