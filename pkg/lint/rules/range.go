package rules

import (
	"fmt"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/lint"
)

// RegisterRangeRules registers the index range rules with the given registry.
func RegisterRangeRules(registry *lint.Registry) {
	registry.Register(NewRNG001())
}

type indexRange struct{ lo, hi uint16 }

// listRanges are the indexes each object list may hold.
var listRanges = map[eds.ObjectList][]indexRange{
	eds.ListMandatory:    {{0x1000, 0x1001}, {0x1018, 0x1018}},
	eds.ListOptional:     {{0x1000, 0x1FFF}, {0x6000, 0xFFFF}},
	eds.ListManufacturer: {{0x2000, 0x5FFF}},
}

func inRange(list eds.ObjectList, index uint16) bool {
	for _, r := range listRanges[list] {
		if index >= r.lo && index <= r.hi {
			return true
		}
	}
	return false
}

// RNG001 checks that every object sits in the list its index belongs to.
type RNG001 struct {
	*lint.BaseRule
}

func NewRNG001() *RNG001 {
	return &RNG001{
		BaseRule: lint.NewBaseRule("RNG-001", "Object index outside list range", "range", lint.SeverityWarning),
	}
}

func (r *RNG001) Check(f *eds.File) []lint.Violation {
	var violations []lint.Violation
	for _, list := range eds.ObjectLists() {
		for _, addr := range f.Dictionary.Addresses(list) {
			if inRange(list, addr.Index()) {
				continue
			}
			violations = append(violations, r.Violation(
				fmt.Sprintf("0x%04X is not a valid index for %s", addr.Index(), list), addr))
		}
	}
	return violations
}
