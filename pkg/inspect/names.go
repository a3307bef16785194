package inspect

import (
	"slices"
	"strings"
)

// objectNames maps well-known communication profile objects to their index.
var objectNames = map[string]uint16{
	"devicetype":     0x1000,
	"errorregister":  0x1001,
	"statusregister": 0x1002,
	"errorfield":     0x1003,
	"syncid":         0x1005,
	"syncperiod":     0x1006,
	"devicename":     0x1008,
	"hwversion":      0x1009,
	"swversion":      0x100A,
	"guardtime":      0x100C,
	"lifetime":       0x100D,
	"store":          0x1010,
	"restore":        0x1011,
	"emcyid":         0x1014,
	"inhibittime":    0x1015,
	"consumerhb":     0x1016,
	"heartbeat":      0x1017,
	"identity":       0x1018,
	"sdoserver":      0x1200,
	"sdoclient":      0x1280,
	"rpdo1":          0x1400,
	"rpdo1map":       0x1600,
	"tpdo1":          0x1800,
	"tpdo1map":       0x1A00,
}

// ResolveObjectName resolves a well-known object name to its index
// (case-insensitive, ignoring "-" and "_").
func ResolveObjectName(name string) (uint16, bool) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	index, ok := objectNames[key]
	return index, ok
}

// ObjectNames returns all well-known object names, sorted.
func ObjectNames() []string {
	names := make([]string, 0, len(objectNames))
	for n := range objectNames {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// WellKnownName returns the well-known name of index, or "".
func WellKnownName(index uint16) string {
	for _, n := range ObjectNames() {
		if objectNames[n] == index {
			return n
		}
	}
	return ""
}

// AreaName returns the dictionary area index belongs to.
func AreaName(index uint16) string {
	switch {
	case index == 0:
		return "reserved"
	case index < 0x1000:
		return "data types"
	case index < 0x2000:
		return "communication profile"
	case index < 0x6000:
		return "manufacturer specific"
	case index < 0xA000:
		return "device profile"
	case index < 0xC000:
		return "interface profile"
	default:
		return "reserved"
	}
}
