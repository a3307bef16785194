package eds

import "strings"

// AccessMode is the access rule of a dictionary entry.
type AccessMode uint8

const (
	AccessConst AccessMode = iota + 1
	AccessReadOnly
	AccessWriteOnly
	AccessReadWrite
	AccessReadWritePDORead
	AccessReadWritePDOWrite
)

var accessTokens = map[string]AccessMode{
	"const": AccessConst,
	"ro":    AccessReadOnly,
	"wo":    AccessWriteOnly,
	"rw":    AccessReadWrite,
	"rwr":   AccessReadWritePDORead,
	"rww":   AccessReadWritePDOWrite,
}

// ParseAccessMode parses one of const, ro, wo, rw, rwr, rww, ignoring case.
func ParseAccessMode(token string) (AccessMode, bool) {
	m, ok := accessTokens[strings.ToLower(token)]
	return m, ok
}

// String returns the EDS token.
func (m AccessMode) String() string {
	switch m {
	case AccessConst:
		return "const"
	case AccessReadOnly:
		return "ro"
	case AccessWriteOnly:
		return "wo"
	case AccessReadWrite:
		return "rw"
	case AccessReadWritePDORead:
		return "rwr"
	case AccessReadWritePDOWrite:
		return "rww"
	default:
		return "unknown"
	}
}

// IsValid reports whether m may be combined with the given PDO mapping flag.
// A mappable entry must say which direction it is mapped in (rwr or rww)
// rather than plain rw; an unmappable entry may not use rwr or rww.
func (m AccessMode) IsValid(pdoMappable bool) bool {
	if pdoMappable {
		return m != AccessReadWrite
	}
	return m != AccessReadWritePDORead && m != AccessReadWritePDOWrite
}

// Readable reports whether SDO reads are allowed.
func (m AccessMode) Readable() bool {
	return m != AccessWriteOnly
}

// Writable reports whether SDO writes are allowed.
func (m AccessMode) Writable() bool {
	switch m {
	case AccessWriteOnly, AccessReadWrite, AccessReadWritePDORead, AccessReadWritePDOWrite:
		return true
	}
	return false
}
