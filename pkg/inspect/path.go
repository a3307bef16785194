// Package inspect browses the object dictionary of a loaded data sheet.
//
// The inspect package offers:
//   - Parsing object paths (e.g., "0x1018.2", "1018sub2", "identity")
//   - Resolving well-known object names to indexes
//   - Looking up objects and listing object lists
//   - Formatting output for display
//   - An interactive shell on top of the above
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid numeric value in path")
)

// Path represents a parsed object path.
type Path struct {
	// Index is the object index.
	Index uint16

	// Subindex is the sub-entry (when HasSubindex is true).
	Subindex uint8

	// HasSubindex is false when the path names a whole object.
	HasSubindex bool

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a path string into a Path struct.
//
// Supported formats:
//   - "0x1018" or "1018" - whole object
//   - "0x1018.2" or "1018.02" - sub-entry
//   - "1018sub2" - sub-entry, spelled like a section name
//   - "identity" - whole object by well-known name
//   - "identity.1" - sub-entry of a named object
//
// Indexes and subindexes are always hexadecimal, with or without the 0x
// prefix, matching how data sheets name their sections.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	p := &Path{Raw: input}

	objPart, subPart, hasSub := splitPath(input)
	if objPart == "" || (hasSub && subPart == "") {
		return nil, ErrInvalidPath
	}

	index, err := parseIndex(objPart)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	p.Index = index

	if !hasSub {
		return p, nil
	}

	sub, err := parseHex(subPart, 8)
	if err != nil {
		return nil, fmt.Errorf("subindex: %w", err)
	}
	p.Subindex = uint8(sub)
	p.HasSubindex = true
	return p, nil
}

// splitPath separates the object and subindex parts at "." or "sub".
func splitPath(s string) (obj, sub string, ok bool) {
	if obj, sub, ok = strings.Cut(s, "."); ok {
		return obj, sub, true
	}
	lower := strings.ToLower(s)
	if i := strings.Index(lower, "sub"); i > 0 {
		return s[:i], s[i+3:], true
	}
	return s, "", false
}

// Address returns the dictionary address of the path. A whole-object path
// maps to subindex 0.
func (p *Path) Address() eds.Address {
	return eds.NewAddress(p.Index, p.Subindex)
}

// String returns the path in canonical form.
func (p *Path) String() string {
	if p.HasSubindex {
		return p.Address().String()
	}
	return fmt.Sprintf("0x%04X", p.Index)
}

// parseIndex parses an object index from a hex number or a well-known name.
func parseIndex(s string) (uint16, error) {
	if v, err := parseHex(s, 16); err == nil {
		return uint16(v), nil
	}
	if index, ok := ResolveObjectName(s); ok {
		return index, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
}

// parseHex parses a hex number with an optional 0x prefix.
func parseHex(s string, bits int) (uint64, error) {
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits = s[2:]
	}
	v, err := strconv.ParseUint(digits, 16, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, s)
	}
	return v, nil
}
