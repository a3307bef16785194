package eds

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumeralError records a failed numeric conversion. Err is strconv.ErrSyntax
// or strconv.ErrRange.
type NumeralError struct {
	Text   string
	Base   int
	Bits   int
	Signed bool
	Err    error
}

func (e *NumeralError) Error() string {
	return fmt.Sprintf("parsing %q as %s (base %d): %v", e.Text, e.target(), e.Base, e.Err)
}

func (e *NumeralError) Unwrap() error { return e.Err }

func (e *NumeralError) target() string {
	switch {
	case e.Base == 0:
		return fmt.Sprintf("float%d", e.Bits)
	case e.Signed:
		return fmt.Sprintf("int%d", e.Bits)
	default:
		return fmt.Sprintf("uint%d", e.Bits)
	}
}

var (
	errNotBoolean = errors.New("boolean must be 0 or 1")
	errNotASCII   = errors.New("visible string must be ASCII")
)

// numeralBase picks the radix from the text: "0x" is hex, a leading zero on
// anything but "0" itself is octal, the rest is decimal. The returned digits
// exclude the hex prefix.
func numeralBase(text string) (base int, digits string) {
	switch {
	case strings.HasPrefix(text, "0x"):
		return 16, text[2:]
	case strings.HasPrefix(text, "0") && text != "0":
		return 8, text[1:]
	default:
		return 10, text
	}
}

// accumulate parses digits of a power-of-two radix into 64 bits, shifting
// bitsPerDigit per character.
func accumulate(digits string, bitsPerDigit uint) (uint64, error) {
	if digits == "" {
		return 0, strconv.ErrSyntax
	}
	radix := uint64(1) << bitsPerDigit
	limit := uint64(math.MaxUint64) >> bitsPerDigit

	var v uint64
	for i := 0; i < len(digits); i++ {
		d, ok := digitValue(digits[i])
		if !ok || d >= radix {
			return 0, strconv.ErrSyntax
		}
		if v > limit {
			return 0, strconv.ErrRange
		}
		v = v<<bitsPerDigit | d
	}
	return v, nil
}

// digitValue returns the value of an ASCII hex digit of either case.
func digitValue(c byte) (uint64, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint64(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint64(c-'a') + 10, true
	case 'A' <= c && c <= 'F':
		return uint64(c-'A') + 10, true
	}
	return 0, false
}

// ParseUnsigned decodes text as an unsigned integer that must fit in bits.
// Failures are *NumeralError.
func ParseUnsigned(text string, bits int) (uint64, error) {
	base, digits := numeralBase(text)
	fail := func(err error) (uint64, error) {
		return 0, &NumeralError{Text: text, Base: base, Bits: bits, Err: err}
	}

	if base == 10 {
		v, err := strconv.ParseUint(digits, 10, bits)
		if err != nil {
			return fail(numErrCause(err))
		}
		return v, nil
	}

	v, err := accumulate(digits, bitsPer(base))
	if err != nil {
		return fail(err)
	}
	if bits < 64 && v > uint64(1)<<bits-1 {
		return fail(strconv.ErrRange)
	}
	return v, nil
}

// ParseSigned decodes text as a signed integer that must fit in bits.
// Hex and octal numerals denote non-negative values only.
// Failures are *NumeralError.
func ParseSigned(text string, bits int) (int64, error) {
	base, digits := numeralBase(text)
	fail := func(err error) (int64, error) {
		return 0, &NumeralError{Text: text, Base: base, Bits: bits, Signed: true, Err: err}
	}

	if base == 10 {
		v, err := strconv.ParseInt(digits, 10, bits)
		if err != nil {
			return fail(numErrCause(err))
		}
		return v, nil
	}

	v, err := accumulate(digits, bitsPer(base))
	if err != nil {
		return fail(err)
	}
	if v > uint64(1)<<(bits-1)-1 {
		return fail(strconv.ErrRange)
	}
	return int64(v), nil
}

// ParseBool decodes a Boolean. Only "0" and "1" are accepted.
func ParseBool(text string) (bool, error) {
	switch text {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, fmt.Errorf("%q: %w", text, errNotBoolean)
}

// ParseHexBytes decodes an OCTET_STRING or DOMAIN payload. Each ASCII hex
// digit yields one byte holding the digit's value.
func ParseHexBytes(text string) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		d, ok := digitValue(text[i])
		if !ok {
			return nil, &NumeralError{Text: text, Base: 16, Bits: 8, Err: strconv.ErrSyntax}
		}
		out = append(out, byte(d))
	}
	return out, nil
}

// ParseReal decodes a REAL32 (bits 32) or REAL64 (bits 64) value.
func ParseReal(text string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(text, bits)
	if err != nil {
		return 0, &NumeralError{Text: text, Bits: bits, Err: numErrCause(err)}
	}
	return f, nil
}

// DecodeValue decodes text as a value of kind.
// Numeric failures are *NumeralError; Boolean and VISIBLE_STRING failures
// are format errors.
func DecodeValue(text string, kind DataType) (Value, error) {
	switch {
	case kind == DataTypeBoolean:
		b, err := ParseBool(text)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil

	case kind.IsUnsigned():
		v, err := ParseUnsigned(text, kind.Bits())
		if err != nil {
			return Value{}, err
		}
		return UnsignedValue(kind, v), nil

	case kind.IsSigned():
		v, err := ParseSigned(text, kind.Bits())
		if err != nil {
			return Value{}, err
		}
		return SignedValue(kind, v), nil

	case kind == DataTypeReal32:
		f, err := ParseReal(text, 32)
		if err != nil {
			return Value{}, err
		}
		return Real32Value(float32(f)), nil

	case kind == DataTypeReal64:
		f, err := ParseReal(text, 64)
		if err != nil {
			return Value{}, err
		}
		return Real64Value(f), nil

	case kind == DataTypeVisibleString:
		if !isASCII(text) {
			return Value{}, fmt.Errorf("%q: %w", text, errNotASCII)
		}
		return VisibleStringValue(text), nil

	case kind == DataTypeUnicodeString:
		return UnicodeStringValue(text), nil

	case kind == DataTypeOctetString:
		b, err := ParseHexBytes(text)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: DataTypeOctetString, b: b}, nil

	case kind == DataTypeDomain:
		b, err := ParseHexBytes(text)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: DataTypeDomain, b: b}, nil
	}

	return Value{}, fmt.Errorf("cannot decode values of %v", kind)
}

// decodeKind classifies a decode failure for *Error.
func decodeKind(err error) error {
	var ne *NumeralError
	if errors.As(err, &ne) {
		return ErrInvalidNumber
	}
	return ErrInvalidFormat
}

func bitsPer(base int) uint {
	if base == 16 {
		return 4
	}
	return 3
}

func numErrCause(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
