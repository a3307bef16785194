package eds

import (
	"bytes"
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Value is a decoded dictionary value of one of the primitive data types.
// A Value owns its payload; use Clone to get an independent copy.
type Value struct {
	kind DataType
	u    uint64
	i    int64
	f    float64
	s    string
	b    []byte
}

// BoolValue returns a Boolean value.
func BoolValue(v bool) Value {
	var u uint64
	if v {
		u = 1
	}
	return Value{kind: DataTypeBoolean, u: u}
}

// UnsignedValue returns an unsigned integer value of the given kind.
// It panics if kind is not an unsigned integer type.
func UnsignedValue(kind DataType, v uint64) Value {
	if !kind.IsUnsigned() {
		panic(fmt.Sprintf("eds: UnsignedValue with %v", kind))
	}
	return Value{kind: kind, u: v}
}

// SignedValue returns a signed integer value of the given kind.
// It panics if kind is not a signed integer type.
func SignedValue(kind DataType, v int64) Value {
	if !kind.IsSigned() {
		panic(fmt.Sprintf("eds: SignedValue with %v", kind))
	}
	return Value{kind: kind, i: v}
}

// Real32Value returns a REAL32 value.
func Real32Value(v float32) Value {
	return Value{kind: DataTypeReal32, f: float64(v)}
}

// Real64Value returns a REAL64 value.
func Real64Value(v float64) Value {
	return Value{kind: DataTypeReal64, f: v}
}

// VisibleStringValue returns a VISIBLE_STRING value.
func VisibleStringValue(s string) Value {
	return Value{kind: DataTypeVisibleString, s: s}
}

// UnicodeStringValue returns a UNICODE_STRING value.
func UnicodeStringValue(s string) Value {
	return Value{kind: DataTypeUnicodeString, s: s}
}

// OctetStringValue returns an OCTET_STRING value holding a copy of b.
func OctetStringValue(b []byte) Value {
	return Value{kind: DataTypeOctetString, b: bytes.Clone(b)}
}

// DomainValue returns a DOMAIN value holding a copy of b.
func DomainValue(b []byte) Value {
	return Value{kind: DataTypeDomain, b: bytes.Clone(b)}
}

// Kind returns the data type of the value.
func (v Value) Kind() DataType { return v.kind }

// Bool returns the payload of a Boolean value.
func (v Value) Bool() bool { return v.u != 0 }

// Uint returns the payload of an unsigned integer value.
func (v Value) Uint() uint64 { return v.u }

// Int returns the payload of a signed integer value.
func (v Value) Int() int64 { return v.i }

// Float returns the payload of a real value.
func (v Value) Float() float64 { return v.f }

// Str returns the payload of a string value.
func (v Value) Str() string { return v.s }

// Bytes returns a copy of the payload of an OCTET_STRING or DOMAIN value.
func (v Value) Bytes() []byte { return bytes.Clone(v.b) }

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := v
	out.b = bytes.Clone(v.b)
	return out
}

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool {
	return v.kind == o.kind &&
		v.u == o.u &&
		v.i == o.i &&
		v.f == o.f &&
		v.s == o.s &&
		bytes.Equal(v.b, o.b)
}

// Compare orders two values of the same ordered kind. ok is false when the
// kinds differ or are not integers or reals.
func (v Value) Compare(o Value) (c int, ok bool) {
	if v.kind != o.kind {
		return 0, false
	}
	switch {
	case v.kind.IsUnsigned():
		return cmp.Compare(v.u, o.u), true
	case v.kind.IsSigned():
		return cmp.Compare(v.i, o.i), true
	case v.kind.IsReal():
		return cmp.Compare(v.f, o.f), true
	}
	return 0, false
}

// Any returns the payload as a plain Go value: bool, uint64, int64, float64,
// string or []byte.
func (v Value) Any() any {
	switch {
	case v.kind == DataTypeBoolean:
		return v.Bool()
	case v.kind.IsUnsigned():
		return v.u
	case v.kind.IsSigned():
		return v.i
	case v.kind.IsReal():
		return v.f
	case v.kind == DataTypeVisibleString, v.kind == DataTypeUnicodeString:
		return v.s
	default:
		return v.Bytes()
	}
}

// String formats the payload for display. Unsigned integers print in hex.
func (v Value) String() string {
	switch {
	case v.kind == DataTypeBoolean:
		return strconv.FormatBool(v.Bool())
	case v.kind.IsUnsigned():
		return "0x" + strings.ToUpper(strconv.FormatUint(v.u, 16))
	case v.kind.IsSigned():
		return strconv.FormatInt(v.i, 10)
	case v.kind == DataTypeReal32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case v.kind == DataTypeReal64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case v.kind == DataTypeVisibleString, v.kind == DataTypeUnicodeString:
		return strconv.Quote(v.s)
	default:
		return fmt.Sprintf("% X", v.b)
	}
}
