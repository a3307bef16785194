package eds

import "fmt"

// ObjectType is the structural kind of a dictionary object.
// Values equal the EDS object codes.
type ObjectType uint8

const (
	ObjectNull      ObjectType = 0x00
	ObjectDomain    ObjectType = 0x02
	ObjectDeftype   ObjectType = 0x05
	ObjectDefstruct ObjectType = 0x06
	ObjectVariable  ObjectType = 0x07
	ObjectArray     ObjectType = 0x08
	ObjectRecord    ObjectType = 0x09
)

// ParseObjectType maps an EDS object code to an ObjectType.
// Unknown codes report false.
func ParseObjectType(code uint8) (ObjectType, bool) {
	switch ot := ObjectType(code); ot {
	case ObjectNull, ObjectDomain, ObjectDeftype, ObjectDefstruct,
		ObjectVariable, ObjectArray, ObjectRecord:
		return ot, true
	}
	return 0, false
}

// IsList reports whether objects of this type have sub-entries.
func (t ObjectType) IsList() bool {
	return t == ObjectArray || t == ObjectRecord || t == ObjectDefstruct
}

// String returns the CiA object code name.
func (t ObjectType) String() string {
	switch t {
	case ObjectNull:
		return "NULL"
	case ObjectDomain:
		return "DOMAIN"
	case ObjectDeftype:
		return "DEFTYPE"
	case ObjectDefstruct:
		return "DEFSTRUCT"
	case ObjectVariable:
		return "VAR"
	case ObjectArray:
		return "ARRAY"
	case ObjectRecord:
		return "RECORD"
	default:
		return fmt.Sprintf("ObjectType(0x%02X)", uint8(t))
	}
}
