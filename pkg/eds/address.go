package eds

import (
	"cmp"
	"fmt"
)

// Address identifies one dictionary entry by index and subindex.
// The zero value is address 0x0000.00. Addresses are comparable and can be
// used as map keys; equality agrees with Key.
type Address struct {
	index    uint16
	subindex uint8
}

// NewAddress returns the address (index, subindex).
func NewAddress(index uint16, subindex uint8) Address {
	return Address{index: index, subindex: subindex}
}

// Index returns the 16-bit object index.
func (a Address) Index() uint16 { return a.index }

// Subindex returns the 8-bit subindex.
func (a Address) Subindex() uint8 { return a.subindex }

// Key returns the 24-bit composite index<<8 | subindex.
func (a Address) Key() uint32 {
	return uint32(a.index)<<8 | uint32(a.subindex)
}

// Compare returns -1, 0 or +1 depending on whether a sorts before, equal to
// or after b.
func (a Address) Compare(b Address) int {
	return cmp.Compare(a.Key(), b.Key())
}

// Less reports whether a sorts before b.
func (a Address) Less(b Address) bool {
	return a.Key() < b.Key()
}

// String formats the address as 0xIIII.SS.
func (a Address) String() string {
	return fmt.Sprintf("0x%04X.%02X", a.index, a.subindex)
}

// ObjectSection returns the section name of the top-level object at index:
// lower-case hex without leading zeros.
func ObjectSection(index uint16) string {
	return fmt.Sprintf("%x", index)
}

// SubObjectSection returns the section name of the child at (index, sub).
func SubObjectSection(index uint16, sub uint8) string {
	return fmt.Sprintf("%xsub%x", index, sub)
}
