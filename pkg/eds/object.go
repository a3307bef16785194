package eds

// Shape identifies which of the five object layouts an Object has.
type Shape uint8

const (
	ShapeNull Shape = iota
	ShapeVariable
	ShapeCompactArray
	ShapeArray
	ShapeDomain
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "NULL"
	case ShapeVariable:
		return "VARIABLE"
	case ShapeCompactArray:
		return "COMPACT_ARRAY"
	case ShapeArray:
		return "ARRAY"
	case ShapeDomain:
		return "DOMAIN"
	default:
		return "UNKNOWN"
	}
}

// ObjFlags is the ObjFlags bit field of an object.
type ObjFlags uint32

const (
	FlagRefuseWriteOnDownload ObjFlags = 1 << 0
	FlagRefuseReadOnScan      ObjFlags = 1 << 1
)

// RefuseWriteOnDownload reports bit 0.
func (f ObjFlags) RefuseWriteOnDownload() bool { return f&FlagRefuseWriteOnDownload != 0 }

// RefuseReadOnScan reports bit 1.
func (f ObjFlags) RefuseReadOnScan() bool { return f&FlagRefuseReadOnScan != 0 }

// Object is a resolved dictionary object. The concrete type is one of
// *NullObject, *Variable, *CompactArray, *Array or *DomainObject; switch on
// Shape or use a type switch.
type Object interface {
	Info() ObjectInfo
	Shape() Shape
	sealed()
}

// ObjectInfo holds what every object shape carries.
type ObjectInfo struct {
	Address    Address
	Name       string
	ObjectType ObjectType
}

// Info returns the common object header.
func (i ObjectInfo) Info() ObjectInfo { return i }

// Definition is the typed description shared by variables and compact arrays.
type Definition struct {
	DataType   DataType
	AccessMode AccessMode
	Default    *Value
	LowLimit   *Value
	HighLimit  *Value
	PDOMapping bool
	Flags      ObjFlags
}

func (d Definition) clone() Definition {
	d.Default = cloneValue(d.Default)
	d.LowLimit = cloneValue(d.LowLimit)
	d.HighLimit = cloneValue(d.HighLimit)
	return d
}

// NullObject is an object with ObjectType NULL.
type NullObject struct {
	ObjectInfo
}

func (*NullObject) Shape() Shape { return ShapeNull }
func (*NullObject) sealed()      {}

// Variable is a single typed value (VAR or DEFTYPE).
type Variable struct {
	ObjectInfo
	Definition
}

func (*Variable) Shape() Shape { return ShapeVariable }
func (*Variable) sealed()      {}

// CompactArray is an ARRAY, RECORD or DEFSTRUCT whose elements are all
// described by one definition (CompactSubObj).
type CompactArray struct {
	ObjectInfo
	Definition

	// Length is the CompactSubObj element count.
	Length uint8
}

func (*CompactArray) Shape() Shape { return ShapeCompactArray }
func (*CompactArray) sealed()      {}

// Array is an ARRAY, RECORD or DEFSTRUCT expanded into one object per
// sub-entry.
type Array struct {
	ObjectInfo

	// SubNumber is the declared number of sub-entries.
	SubNumber uint8

	// Entries holds the sub-entries in subindex order. Sub-entries whose
	// section is absent are omitted.
	Entries []Object

	Flags ObjFlags
}

func (*Array) Shape() Shape { return ShapeArray }
func (*Array) sealed()      {}

// Entry returns the sub-entry at subindex sub.
func (a *Array) Entry(sub uint8) (Object, bool) {
	for _, e := range a.Entries {
		if e.Info().Address.Subindex() == sub {
			return e, true
		}
	}
	return nil, false
}

// DomainObject is an object with ObjectType DOMAIN.
type DomainObject struct {
	ObjectInfo
	DataType   DataType
	AccessMode AccessMode
	PDOMapping bool
	Default    *Value
	Flags      ObjFlags
}

func (*DomainObject) Shape() Shape { return ShapeDomain }
func (*DomainObject) sealed()      {}

// DataTypeOf returns the data type carried by o. Null objects and expanded
// arrays have none.
func DataTypeOf(o Object) (DataType, bool) {
	switch v := o.(type) {
	case *Variable:
		return v.DataType, true
	case *CompactArray:
		return v.DataType, true
	case *DomainObject:
		return v.DataType, true
	}
	return 0, false
}

// FlagsOf returns the object flags of o.
func FlagsOf(o Object) ObjFlags {
	switch v := o.(type) {
	case *Variable:
		return v.Flags
	case *CompactArray:
		return v.Flags
	case *Array:
		return v.Flags
	case *DomainObject:
		return v.Flags
	}
	return 0
}

// DefinitionOf returns the typed definition of a variable or compact array.
func DefinitionOf(o Object) (Definition, bool) {
	switch v := o.(type) {
	case *Variable:
		return v.Definition, true
	case *CompactArray:
		return v.Definition, true
	}
	return Definition{}, false
}

// CloneObject returns a deep copy of o.
func CloneObject(o Object) Object {
	switch v := o.(type) {
	case *NullObject:
		c := *v
		return &c
	case *Variable:
		c := *v
		c.Definition = v.Definition.clone()
		return &c
	case *CompactArray:
		c := *v
		c.Definition = v.Definition.clone()
		return &c
	case *Array:
		c := *v
		c.Entries = make([]Object, len(v.Entries))
		for i, e := range v.Entries {
			c.Entries[i] = CloneObject(e)
		}
		return &c
	case *DomainObject:
		c := *v
		c.Default = cloneValue(v.Default)
		return &c
	}
	return nil
}

func cloneValue(v *Value) *Value {
	if v == nil {
		return nil
	}
	c := v.Clone()
	return &c
}
