package eds

import "fmt"

// DataType is a primitive value kind. Values equal the EDS type codes.
// The zero value is not a valid data type.
type DataType uint16

const (
	DataTypeBoolean       DataType = 0x01
	DataTypeInt8          DataType = 0x02
	DataTypeInt16         DataType = 0x03
	DataTypeInt32         DataType = 0x04
	DataTypeUInt8         DataType = 0x05
	DataTypeUInt16        DataType = 0x06
	DataTypeUInt32        DataType = 0x07
	DataTypeReal32        DataType = 0x08
	DataTypeVisibleString DataType = 0x09
	DataTypeOctetString   DataType = 0x0A
	DataTypeUnicodeString DataType = 0x0B
	DataTypeDomain        DataType = 0x0F
	DataTypeReal64        DataType = 0x11
	DataTypeInt64         DataType = 0x15
	DataTypeUInt64        DataType = 0x1B
)

var dataTypeNames = map[DataType]string{
	DataTypeBoolean:       "BOOLEAN",
	DataTypeInt8:          "INTEGER8",
	DataTypeInt16:         "INTEGER16",
	DataTypeInt32:         "INTEGER32",
	DataTypeUInt8:         "UNSIGNED8",
	DataTypeUInt16:        "UNSIGNED16",
	DataTypeUInt32:        "UNSIGNED32",
	DataTypeReal32:        "REAL32",
	DataTypeVisibleString: "VISIBLE_STRING",
	DataTypeOctetString:   "OCTET_STRING",
	DataTypeUnicodeString: "UNICODE_STRING",
	DataTypeDomain:        "DOMAIN",
	DataTypeReal64:        "REAL64",
	DataTypeInt64:         "INTEGER64",
	DataTypeUInt64:        "UNSIGNED64",
}

// ParseDataType maps an EDS type code to a DataType.
// Unknown codes report false.
func ParseDataType(code uint16) (DataType, bool) {
	dt := DataType(code)
	_, ok := dataTypeNames[dt]
	return dt, ok
}

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	_, ok := dataTypeNames[d]
	return ok
}

// String returns the CiA type name.
func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DataType(0x%04X)", uint16(d))
}

// Bits returns the width of integer and real types and 0 for everything else.
func (d DataType) Bits() int {
	switch d {
	case DataTypeInt8, DataTypeUInt8:
		return 8
	case DataTypeInt16, DataTypeUInt16:
		return 16
	case DataTypeInt32, DataTypeUInt32, DataTypeReal32:
		return 32
	case DataTypeInt64, DataTypeUInt64, DataTypeReal64:
		return 64
	default:
		return 0
	}
}

// IsSigned reports whether d is a signed integer type.
func (d DataType) IsSigned() bool {
	switch d {
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		return true
	}
	return false
}

// IsUnsigned reports whether d is an unsigned integer type.
func (d DataType) IsUnsigned() bool {
	switch d {
	case DataTypeUInt8, DataTypeUInt16, DataTypeUInt32, DataTypeUInt64:
		return true
	}
	return false
}

// IsReal reports whether d is a floating point type.
func (d DataType) IsReal() bool {
	return d == DataTypeReal32 || d == DataTypeReal64
}

// SupportsLimits reports whether LowLimit/HighLimit may be given for d.
// Only integer and real types are ordered.
func (d DataType) SupportsLimits() bool {
	return d.IsSigned() || d.IsUnsigned() || d.IsReal()
}

// DataTypes returns all known data types in ascending code order.
func DataTypes() []DataType {
	return []DataType{
		DataTypeBoolean, DataTypeInt8, DataTypeInt16, DataTypeInt32,
		DataTypeUInt8, DataTypeUInt16, DataTypeUInt32, DataTypeReal32,
		DataTypeVisibleString, DataTypeOctetString, DataTypeUnicodeString,
		DataTypeDomain, DataTypeReal64, DataTypeInt64, DataTypeUInt64,
	}
}
