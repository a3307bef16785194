package rules

import (
	"fmt"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/lint"
)

// RegisterConsistencyRules registers all consistency rules with the given registry.
func RegisterConsistencyRules(registry *lint.Registry) {
	registry.Register(NewCON001())
	registry.Register(NewCON002())
	registry.Register(NewCON003())
	registry.Register(NewCON004())
}

// CON001 checks that LowLimit does not exceed HighLimit.
type CON001 struct {
	*lint.BaseRule
}

func NewCON001() *CON001 {
	return &CON001{
		BaseRule: lint.NewBaseRule("CON-001", "Limits inverted", "consistency", lint.SeverityError),
	}
}

func (r *CON001) Check(f *eds.File) []lint.Violation {
	var violations []lint.Violation
	eachObject(f.Dictionary, func(_ eds.ObjectList, obj eds.Object) {
		def, ok := eds.DefinitionOf(obj)
		if !ok || def.LowLimit == nil || def.HighLimit == nil {
			return
		}
		if c, ok := def.LowLimit.Compare(*def.HighLimit); ok && c > 0 {
			violations = append(violations, r.Violation(
				fmt.Sprintf("%s: LowLimit %s is greater than HighLimit %s",
					obj.Info().Address, def.LowLimit, def.HighLimit),
				obj.Info().Address))
		}
	})
	return violations
}

// CON002 checks that DefaultValue lies within the limits.
type CON002 struct {
	*lint.BaseRule
}

func NewCON002() *CON002 {
	return &CON002{
		BaseRule: lint.NewBaseRule("CON-002", "Default outside limits", "consistency", lint.SeverityError),
	}
}

func (r *CON002) Check(f *eds.File) []lint.Violation {
	var violations []lint.Violation
	eachObject(f.Dictionary, func(_ eds.ObjectList, obj eds.Object) {
		def, ok := eds.DefinitionOf(obj)
		if !ok || def.Default == nil {
			return
		}
		addr := obj.Info().Address
		if def.LowLimit != nil {
			if c, ok := def.Default.Compare(*def.LowLimit); ok && c < 0 {
				violations = append(violations, r.Violation(
					fmt.Sprintf("%s: DefaultValue %s is below LowLimit %s", addr, def.Default, def.LowLimit), addr))
				return
			}
		}
		if def.HighLimit != nil {
			if c, ok := def.Default.Compare(*def.HighLimit); ok && c > 0 {
				violations = append(violations, r.Violation(
					fmt.Sprintf("%s: DefaultValue %s is above HighLimit %s", addr, def.Default, def.HighLimit), addr))
			}
		}
	})
	return violations
}

// CON003 checks that the "highest sub-index supported" entry of an expanded
// array agrees with the entries actually present.
type CON003 struct {
	*lint.BaseRule
}

func NewCON003() *CON003 {
	return &CON003{
		BaseRule: lint.NewBaseRule("CON-003", "Highest sub-index mismatch", "consistency", lint.SeverityWarning),
	}
}

func (r *CON003) Check(f *eds.File) []lint.Violation {
	var violations []lint.Violation
	eachObject(f.Dictionary, func(_ eds.ObjectList, obj eds.Object) {
		arr, ok := obj.(*eds.Array)
		if !ok || len(arr.Entries) == 0 {
			return
		}
		sub0, ok := arr.Entry(0)
		if !ok {
			return
		}
		def, ok := eds.DefinitionOf(sub0)
		if !ok || def.Default == nil || !def.DataType.IsUnsigned() {
			return
		}

		highest := arr.Entries[len(arr.Entries)-1].Info().Address.Subindex()
		if def.Default.Uint() == uint64(highest) {
			return
		}
		v := r.Violation(
			fmt.Sprintf("%s: sub-index 0 declares %d as highest sub-index, highest present is %d",
				arr.Address, def.Default.Uint(), highest),
			arr.Address)
		v.Suggestion = fmt.Sprintf("set DefaultValue=%d in [%s]", highest, eds.SubObjectSection(arr.Address.Index(), 0))
		violations = append(violations, v)
	})
	return violations
}

// CON004 checks NrOfRXPDO and NrOfTXPDO against the PDO communication
// parameter objects in the dictionary.
type CON004 struct {
	*lint.BaseRule
}

func NewCON004() *CON004 {
	return &CON004{
		BaseRule: lint.NewBaseRule("CON-004", "PDO count mismatch", "consistency", lint.SeverityWarning),
	}
}

func (r *CON004) Check(f *eds.File) []lint.Violation {
	var violations []lint.Violation

	checks := []struct {
		key      string
		declared uint16
		lo, hi   uint16
	}{
		{"NrOfRXPDO", f.DeviceInfo.NrOfRXPDO, 0x1400, 0x15FF},
		{"NrOfTXPDO", f.DeviceInfo.NrOfTXPDO, 0x1800, 0x19FF},
	}
	for _, c := range checks {
		found := countIndexes(f.Dictionary, c.lo, c.hi)
		if found == int(c.declared) {
			continue
		}
		v := r.Violation(fmt.Sprintf("%s=%d but %d communication objects in 0x%04X-0x%04X",
			c.key, c.declared, found, c.lo, c.hi))
		v.Suggestion = fmt.Sprintf("set %s=%d in [DeviceInfo]", c.key, found)
		violations = append(violations, v)
	}
	return violations
}
