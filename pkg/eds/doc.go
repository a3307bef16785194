// Package eds loads CANopen electronic data sheets (EDS, CiA 306) and
// resolves their object dictionary into typed, validated objects.
//
// A data sheet is an INI-like text file. The [FileInfo] and [DeviceInfo]
// sections describe the file and the device; the [MandatoryObjects],
// [OptionalObjects] and [ManufacturerObjects] sections list the object
// indexes the device implements. Each object lives in a section named by
// its index in lower-case hex ("1018"), and each sub-entry of an expanded
// array or record in "<index>sub<subindex>" ("1018sub2").
//
// # Loading
//
//	f, err := eds.ParseFile("drive.eds")
//	if err != nil {
//	    var e *eds.Error
//	    if errors.As(err, &e) {
//	        fmt.Println(e.Section, e.Field)
//	    }
//	    return err
//	}
//	obj, list, ok := f.Dictionary.Lookup(eds.NewAddress(0x1018, 1))
//
// A load either returns a complete dictionary or the first violation found
// while resolving lists, objects and sub-entries in file order. Every error
// is an *Error; test its kind with errors.Is against ErrMissingSection,
// ErrInvalidNumber and the other Err* values.
//
// # Objects
//
// Object is a closed set of five shapes selected by ObjectType and
// CompactSubObj:
//
//	VAR, DEFTYPE                          -> *Variable
//	DOMAIN                                -> *DomainObject
//	ARRAY, RECORD, DEFSTRUCT              -> *Array (one entry per sub-section)
//	ARRAY, RECORD, DEFSTRUCT + compact    -> *CompactArray
//	NULL                                  -> *NullObject
//
// # Values
//
// DefaultValue, LowLimit and HighLimit are decoded according to the object's
// DataType. Integers accept "0x" hex, leading-zero octal and decimal
// numerals and must fit the type's width.
package eds
