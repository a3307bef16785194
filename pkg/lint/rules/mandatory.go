package rules

import (
	"fmt"

	"github.com/eds-tools/eds-go/pkg/eds"
	"github.com/eds-tools/eds-go/pkg/lint"
)

// RegisterMandatoryRules registers all mandatory object rules with the given registry.
func RegisterMandatoryRules(registry *lint.Registry) {
	registry.Register(NewMAN001())
	registry.Register(NewMAN002())
	registry.Register(NewMAN003())
}

// mandatoryObject flags a data sheet whose MandatoryObjects list lacks index.
type mandatoryObject struct {
	*lint.BaseRule
	index uint16
	what  string
}

func (r *mandatoryObject) Check(f *eds.File) []lint.Violation {
	addr := eds.NewAddress(r.index, 0)
	if _, ok := f.Dictionary.Mandatory[addr]; ok {
		return nil
	}

	v := r.Violation(fmt.Sprintf("%s (0x%04X) missing from MandatoryObjects", r.what, r.index), addr)
	if _, list, ok := f.Dictionary.LookupObject(r.index); ok {
		v.Suggestion = fmt.Sprintf("move 0x%04X from %s to MandatoryObjects", r.index, list)
	} else {
		v.Suggestion = fmt.Sprintf("add a [%s] section and list it in MandatoryObjects", eds.ObjectSection(r.index))
	}
	return []lint.Violation{v}
}

// MAN001 checks that the Device Type object is mandatory.
type MAN001 struct{ mandatoryObject }

func NewMAN001() *MAN001 {
	return &MAN001{mandatoryObject{
		BaseRule: lint.NewBaseRule("MAN-001", "Device type required", "mandatory", lint.SeverityError),
		index:    0x1000,
		what:     "device type",
	}}
}

// MAN002 checks that the Error Register object is mandatory.
type MAN002 struct{ mandatoryObject }

func NewMAN002() *MAN002 {
	return &MAN002{mandatoryObject{
		BaseRule: lint.NewBaseRule("MAN-002", "Error register required", "mandatory", lint.SeverityError),
		index:    0x1001,
		what:     "error register",
	}}
}

// MAN003 checks that the Identity object is present.
type MAN003 struct{ mandatoryObject }

func NewMAN003() *MAN003 {
	return &MAN003{mandatoryObject{
		BaseRule: lint.NewBaseRule("MAN-003", "Identity object expected", "mandatory", lint.SeverityWarning),
		index:    0x1018,
		what:     "identity object",
	}}
}
