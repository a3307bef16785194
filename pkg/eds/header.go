package eds

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Header section names.
const (
	SectionFileInfo   = "FileInfo"
	SectionDeviceInfo = "DeviceInfo"
	SectionComments   = "Comments"
	SectionDummyUsage = "DummyUsage"
)

// FormatVersion is the EDSVersion declared in FileInfo.
type FormatVersion uint8

const (
	VersionUnsupported FormatVersion = iota
	Version30
	Version40
)

// String returns the version number, or "unsupported".
func (v FormatVersion) String() string {
	switch v {
	case Version30:
		return "3.0"
	case Version40:
		return "4.0"
	default:
		return "unsupported"
	}
}

// ParseFormatVersion parses an EDSVersion value. Versions other than 3.0 and
// 4.0 are returned as VersionUnsupported without error; text that is not a
// number is an error.
func ParseFormatVersion(text string) (FormatVersion, error) {
	f, err := ParseReal(text, 32)
	if err != nil {
		return VersionUnsupported, err
	}
	switch f {
	case 3.0:
		return Version30, nil
	case 4.0:
		return Version40, nil
	}
	return VersionUnsupported, nil
}

// FileInfo is the [FileInfo] header block.
type FileInfo struct {
	FileName     string
	FileVersion  uint8
	FileRevision uint8

	// EDSVersion defaults to 3.0 when absent. EDSVersionText keeps the raw
	// value, empty when absent.
	EDSVersion     FormatVersion
	EDSVersionText string

	Description string
	Created     time.Time
	CreatedBy   string
	Modified    time.Time
	ModifiedBy  string
}

// ReadFileInfo decodes the [FileInfo] section of store.
func ReadFileInfo(store Store) (FileInfo, error) {
	sec, ok := store.Section(SectionFileInfo)
	if !ok {
		return FileInfo{}, missingSection(SectionFileInfo, nil)
	}
	f := fields{sec: sec}
	var fi FileInfo
	var err error

	if fi.FileName, err = f.required("FileName"); err != nil {
		return FileInfo{}, err
	}
	if fi.FileVersion, err = f.u8("FileVersion"); err != nil {
		return FileInfo{}, err
	}
	if fi.FileRevision, err = f.u8("FileRevision"); err != nil {
		return FileInfo{}, err
	}

	fi.EDSVersion = Version30
	if raw, ok := sec.Value("EDSVersion"); ok {
		fi.EDSVersionText = raw
		if fi.EDSVersion, err = ParseFormatVersion(raw); err != nil {
			return FileInfo{}, decodeError(sec.Name(), "EDSVersion", raw, nil, err)
		}
	}

	if fi.Description, err = f.required("Description"); err != nil {
		return FileInfo{}, err
	}
	if fi.Created, err = f.dateTime("CreationDate", "CreationTime"); err != nil {
		return FileInfo{}, err
	}
	if fi.CreatedBy, err = f.required("CreatedBy"); err != nil {
		return FileInfo{}, err
	}
	if fi.Modified, err = f.dateTime("ModificationDate", "ModificationTime"); err != nil {
		return FileInfo{}, err
	}
	if fi.ModifiedBy, err = f.required("ModifiedBy"); err != nil {
		return FileInfo{}, err
	}
	return fi, nil
}

var errGranularity = errors.New("granularity must be between 1 and 64")

// baudRates are the kbit/s rates with a BaudRate_<n> key in DeviceInfo.
var baudRates = []uint16{10, 20, 50, 125, 250, 500, 800, 1000}

// DeviceInfo is the [DeviceInfo] header block.
type DeviceInfo struct {
	VendorName     string
	VendorNumber   uint32
	ProductName    string
	ProductNumber  uint32
	RevisionNumber uint32
	OrderCode      string

	// BaudRates lists the supported bit rates in kbit/s, ascending.
	BaudRates []uint16

	SimpleBootUpMaster bool
	SimpleBootUpSlave  bool

	// Granularity is the PDO mapping granularity in bits, 1..64.
	Granularity uint8

	DynamicChannelsSupported bool
	GroupMessaging           bool
	NrOfRXPDO                uint16
	NrOfTXPDO                uint16
	LSSSupported             bool
}

// SupportsBaudRate reports whether kbps is one of the supported rates.
func (d DeviceInfo) SupportsBaudRate(kbps uint16) bool {
	for _, r := range d.BaudRates {
		if r == kbps {
			return true
		}
	}
	return false
}

// ReadDeviceInfo decodes the [DeviceInfo] section of store.
func ReadDeviceInfo(store Store) (DeviceInfo, error) {
	sec, ok := store.Section(SectionDeviceInfo)
	if !ok {
		return DeviceInfo{}, missingSection(SectionDeviceInfo, nil)
	}
	f := fields{sec: sec}
	var di DeviceInfo
	var err error

	if di.VendorName, err = f.required("VendorName"); err != nil {
		return DeviceInfo{}, err
	}
	if di.VendorNumber, err = f.u32("VendorNumber"); err != nil {
		return DeviceInfo{}, err
	}
	if di.ProductName, err = f.required("ProductName"); err != nil {
		return DeviceInfo{}, err
	}
	if di.ProductNumber, err = f.u32("ProductNumber"); err != nil {
		return DeviceInfo{}, err
	}
	if di.RevisionNumber, err = f.u32("RevisionNumber"); err != nil {
		return DeviceInfo{}, err
	}
	if di.OrderCode, err = f.required("OrderCode"); err != nil {
		return DeviceInfo{}, err
	}

	for _, rate := range baudRates {
		supported, err := f.requiredBool("BaudRate_" + strconv.Itoa(int(rate)))
		if err != nil {
			return DeviceInfo{}, err
		}
		if supported {
			di.BaudRates = append(di.BaudRates, rate)
		}
	}

	if di.SimpleBootUpMaster, err = f.requiredBool("SimpleBootUpMaster"); err != nil {
		return DeviceInfo{}, err
	}
	if di.SimpleBootUpSlave, err = f.requiredBool("SimpleBootUpSlave"); err != nil {
		return DeviceInfo{}, err
	}

	if di.Granularity, err = f.u8("Granularity"); err != nil {
		return DeviceInfo{}, err
	}
	if di.Granularity < 1 || di.Granularity > 64 {
		raw, _ := sec.Value("Granularity")
		return DeviceInfo{}, &Error{
			Kind:    ErrInvalidFormat,
			Section: sec.Name(),
			Field:   "Granularity",
			Value:   raw,
			Err:     errGranularity,
		}
	}

	if di.DynamicChannelsSupported, err = f.requiredBool("DynamicChannelsSupported"); err != nil {
		return DeviceInfo{}, err
	}
	if di.GroupMessaging, err = f.requiredBool("GroupMessaging"); err != nil {
		return DeviceInfo{}, err
	}
	if di.NrOfRXPDO, err = f.u16("NrOfRXPDO"); err != nil {
		return DeviceInfo{}, err
	}
	if di.NrOfTXPDO, err = f.u16("NrOfTXPDO"); err != nil {
		return DeviceInfo{}, err
	}
	if di.LSSSupported, err = f.requiredBool("LSS_Supported"); err != nil {
		return DeviceInfo{}, err
	}
	return di, nil
}

// ReadComments returns the Line1..LineN entries of the optional [Comments]
// section. A missing section yields no comments.
func ReadComments(store Store) ([]string, error) {
	sec, ok := store.Section(SectionComments)
	if !ok {
		return nil, nil
	}
	f := fields{sec: sec}

	n, err := f.u16("Lines")
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, n)
	for i := 1; i <= int(n); i++ {
		line, err := f.required("Line" + strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// ReadDummyUsage returns the Dummy<code> flags of the optional [DummyUsage]
// section, keyed by data type. Only keys present in the section appear.
func ReadDummyUsage(store Store) (map[DataType]bool, error) {
	sec, ok := store.Section(SectionDummyUsage)
	if !ok {
		return nil, nil
	}
	f := fields{sec: sec}

	out := make(map[DataType]bool)
	for _, dt := range DataTypes() {
		key := fmt.Sprintf("Dummy%04X", uint16(dt))
		if _, present := sec.Value(key); !present {
			continue
		}
		used, err := f.requiredBool(key)
		if err != nil {
			return nil, err
		}
		out[dt] = used
	}
	return out, nil
}

func (f fields) u8(key string) (uint8, error) {
	v, err := f.requiredUint(key, 8)
	return uint8(v), err
}

func (f fields) u16(key string) (uint16, error) {
	v, err := f.requiredUint(key, 16)
	return uint16(v), err
}

func (f fields) u32(key string) (uint32, error) {
	v, err := f.requiredUint(key, 32)
	return uint32(v), err
}

func (f fields) requiredBool(key string) (bool, error) {
	raw, err := f.required(key)
	if err != nil {
		return false, err
	}
	b, err := ParseBool(raw)
	if err != nil {
		return false, decodeError(f.sec.Name(), key, raw, f.addr, err)
	}
	return b, nil
}

// dateTime reads a date key and a time key and combines them into one UTC
// instant.
func (f fields) dateTime(dateKey, timeKey string) (time.Time, error) {
	rawDate, err := f.required(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	rawTime, err := f.required(timeKey)
	if err != nil {
		return time.Time{}, err
	}

	d, err := ParseDate(rawDate)
	if err != nil {
		return time.Time{}, f.failWith(ErrInvalidFormat, dateKey, rawDate, err)
	}
	t, err := ParseTime(rawTime)
	if err != nil {
		return time.Time{}, f.failWith(ErrInvalidFormat, timeKey, rawTime, err)
	}
	ts, err := CombineDateTime(d, t)
	if err != nil {
		return time.Time{}, f.failWith(ErrInvalidFormat, dateKey, rawDate, err)
	}
	return ts, nil
}

func (f fields) failWith(kind error, field, value string, cause error) *Error {
	e := f.fail(kind, field, value)
	e.Err = cause
	return e
}
