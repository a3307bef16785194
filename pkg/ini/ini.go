// Package ini reads the section/key text format used by CANopen electronic
// data sheets.
//
// A file is a sequence of lines. Blank lines and lines starting with ';' are
// ignored. Every other line is either a section header ("[Name]") or a
// "key=value" pair belonging to the most recent section. Section and key
// lookups are case-insensitive; a section name or a key within one section
// may only be defined once.
package ini

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
)

// Syntax errors.
var (
	ErrInvalidLine         = errors.New("line is neither a section header nor a key=value pair")
	ErrValueOutsideSection = errors.New("value defined outside any section")
	ErrDuplicateSection    = errors.New("duplicate section definition")
	ErrDuplicateKey        = errors.New("duplicate key definition")
)

// maxLineSize bounds a single line. Real data sheets stay far below it.
const maxLineSize = 1 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SyntaxError describes a malformed line.
type SyntaxError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the offending line with surrounding whitespace removed.
	Text string

	// Section is the section being read, if any.
	Section string

	// Key is the key involved, for value and duplicate-key errors.
	Key string

	Err error
}

func (e *SyntaxError) Error() string {
	switch {
	case errors.Is(e.Err, ErrDuplicateSection):
		return fmt.Sprintf("line %d: %v: [%s]", e.Line, e.Err, e.Section)
	case errors.Is(e.Err, ErrDuplicateKey):
		return fmt.Sprintf("line %d: %v: %s in [%s]", e.Line, e.Err, e.Key, e.Section)
	case errors.Is(e.Err, ErrValueOutsideSection):
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Key)
	default:
		return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
	}
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// fold returns the canonical lookup form of a section name or key.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Section is a named group of key=value pairs.
type Section struct {
	name   string
	line   int
	keys   []string
	values map[string]string
}

func newSection(name string, line int) *Section {
	return &Section{
		name:   name,
		line:   line,
		values: make(map[string]string),
	}
}

// Name returns the section name as written in the file.
func (s *Section) Name() string { return s.name }

// Line returns the line number of the section header.
func (s *Section) Line() int { return s.line }

// Value returns the value stored under key, ignoring case.
func (s *Section) Value(key string) (string, bool) {
	v, ok := s.values[fold(key)]
	return v, ok
}

// Keys returns the keys in file order, as written in the file.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of keys in the section.
func (s *Section) Len() int { return len(s.keys) }

func (s *Section) set(key, value string) bool {
	k := fold(key)
	if _, exists := s.values[k]; exists {
		return false
	}
	s.keys = append(s.keys, key)
	s.values[k] = value
	return true
}

// File is a parsed section store. It is immutable once returned by Parse.
type File struct {
	sections []*Section
	index    map[string]*Section
}

// Section returns the section with the given name, ignoring case.
func (f *File) Section(name string) (*Section, bool) {
	s, ok := f.index[fold(name)]
	return s, ok
}

// Sections returns all sections in file order.
func (f *File) Sections() []*Section {
	out := make([]*Section, len(f.sections))
	copy(out, f.sections)
	return out
}

// Parse reads a section store from r.
// Read failures are returned wrapped; malformed content yields a *SyntaxError.
func Parse(r io.Reader) (*File, error) {
	f := &File{index: make(map[string]*Section)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var current *Section
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		raw := scanner.Bytes()
		if lineNum == 1 {
			raw = bytes.TrimPrefix(raw, utf8BOM)
		}
		line := strings.TrimSpace(string(raw))

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if strings.HasPrefix(line, "[") {
			name := strings.TrimSpace(strings.TrimRight(strings.TrimLeft(line, "["), "]"))
			if name == "" {
				return nil, &SyntaxError{Line: lineNum, Text: line, Err: ErrInvalidLine}
			}
			if _, exists := f.index[fold(name)]; exists {
				return nil, &SyntaxError{Line: lineNum, Text: line, Section: name, Err: ErrDuplicateSection}
			}
			current = newSection(name, lineNum)
			f.sections = append(f.sections, current)
			f.index[fold(name)] = current
			continue
		}

		key, value, ok := splitValueLine(line)
		if !ok {
			se := &SyntaxError{Line: lineNum, Text: line, Err: ErrInvalidLine}
			if current != nil {
				se.Section = current.name
			}
			return nil, se
		}
		if current == nil {
			return nil, &SyntaxError{Line: lineNum, Text: line, Key: key, Err: ErrValueOutsideSection}
		}
		if !current.set(key, value) {
			return nil, &SyntaxError{Line: lineNum, Text: line, Section: current.name, Key: key, Err: ErrDuplicateKey}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}

	return f, nil
}

// splitValueLine splits "key=value" at the first '='. Both halves must be
// non-empty after trimming.
func splitValueLine(line string) (key, value string, ok bool) {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// ParseBytes parses a section store from a byte slice.
func ParseBytes(data []byte) (*File, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString parses a section store from a string.
func ParseString(s string) (*File, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the section store in the file at path.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}
