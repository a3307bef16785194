package eds

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressAccessorsRoundTrip(t *testing.T) {
	for _, idx := range []uint16{0, 1, 0x1000, 0x1018, 0xFFFF} {
		for _, sub := range []uint8{0, 1, 0x7F, 0xFF} {
			a := NewAddress(idx, sub)
			assert.Equal(t, idx, a.Index())
			assert.Equal(t, sub, a.Subindex())
			assert.Equal(t, uint32(idx)<<8|uint32(sub), a.Key())
		}
	}
}

func TestAddressOrderMatchesKey(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		a := NewAddress(uint16(r.Intn(1<<16)), uint8(r.Intn(256)))
		b := NewAddress(uint16(r.Intn(1<<16)), uint8(r.Intn(256)))

		assert.Equal(t, a.Key() < b.Key(), a.Less(b), "%v < %v", a, b)
		assert.Equal(t, a.Key() == b.Key(), a == b)
		switch {
		case a.Key() < b.Key():
			assert.Equal(t, -1, a.Compare(b))
		case a.Key() > b.Key():
			assert.Equal(t, 1, a.Compare(b))
		default:
			assert.Equal(t, 0, a.Compare(b))
		}
	}
}

func TestAddressSubindexSortsWithinIndex(t *testing.T) {
	addrs := []Address{
		NewAddress(0x1001, 0),
		NewAddress(0x1000, 2),
		NewAddress(0x1000, 0),
		NewAddress(0x0FFF, 0xFF),
	}
	slices.SortFunc(addrs, Address.Compare)

	assert.Equal(t, []Address{
		NewAddress(0x0FFF, 0xFF),
		NewAddress(0x1000, 0),
		NewAddress(0x1000, 2),
		NewAddress(0x1001, 0),
	}, addrs)
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "0x1018.02", NewAddress(0x1018, 2).String())
	assert.Equal(t, "0x000A.FF", NewAddress(0xA, 0xFF).String())
}

func TestSectionNames(t *testing.T) {
	assert.Equal(t, "1018", ObjectSection(0x1018))
	assert.Equal(t, "a", ObjectSection(0x000A))
	assert.Equal(t, "1a00", ObjectSection(0x1A00))
	assert.Equal(t, "1018sub0", SubObjectSection(0x1018, 0))
	assert.Equal(t, "1a00sub1f", SubObjectSection(0x1A00, 0x1F))
}
