package eds

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/eds-tools/eds-go/pkg/log"
)

// Object section keys.
const (
	KeyParameterName = "ParameterName"
	KeyObjectType    = "ObjectType"
	KeyDataType      = "DataType"
	KeyAccessType    = "AccessType"
	KeyDefaultValue  = "DefaultValue"
	KeyPDOMapping    = "PDOMapping"
	KeyLowLimit      = "LowLimit"
	KeyHighLimit     = "HighLimit"
	KeyObjFlags      = "ObjFlags"
	KeySubNumber     = "SubNumber"
	KeyCompactSubObj = "CompactSubObj"

	KeySupportedObjects = "SupportedObjects"
)

// Resolver turns sections of a Store into dictionary objects.
//
// Resolution is a pure function of the store and the requested address; a
// Resolver holds no state between calls and may be reused.
type Resolver struct {
	Store Store

	// Logger is used for debug logging. If nil, logging is disabled.
	Logger *slog.Logger

	// Trace receives one event per resolved object and per assembled list.
	// If nil, tracing is disabled.
	Trace log.Logger

	// LoadID and Source label trace events.
	LoadID string
	Source string
}

// NewResolver returns a Resolver reading from store.
func NewResolver(store Store) *Resolver {
	return &Resolver{Store: store}
}

// ResolveObject resolves the top-level object at addr.Index() and, for
// expanded arrays, all of its sub-entries. Nothing is returned unless every
// field of every entry is valid.
func (r *Resolver) ResolveObject(addr Address) (Object, error) {
	return r.resolve(ObjectSection(addr.Index()), NewAddress(addr.Index(), 0), false)
}

// resolve builds the object described by section name. Children of a list
// (child true) may not be lists themselves; that is checked before any
// expansion so recursion never goes deeper than one level.
func (r *Resolver) resolve(name string, addr Address, child bool) (Object, error) {
	sec, ok := r.Store.Section(name)
	if !ok {
		return nil, missingSection(name, addrPtr(addr))
	}
	f := fields{sec: sec, addr: addrPtr(addr)}

	paramName, err := f.required(KeyParameterName)
	if err != nil {
		return nil, err
	}

	code, err := f.requiredUint(KeyObjectType, 8)
	if err != nil {
		return nil, err
	}
	ot, ok := ParseObjectType(uint8(code))
	if !ok {
		return nil, f.fail(ErrInvalidObjectType, KeyObjectType, fmt.Sprintf("0x%02X", code))
	}
	if child && ot.IsList() {
		return nil, f.fail(ErrNestedList, KeyObjectType, ot.String())
	}

	info := ObjectInfo{Address: addr, Name: paramName, ObjectType: ot}

	var obj Object
	var skipped []uint8
	switch {
	case ot == ObjectVariable || ot == ObjectDeftype:
		def, err := r.definition(f)
		if err != nil {
			return nil, err
		}
		obj = &Variable{ObjectInfo: info, Definition: def}

	case ot == ObjectDomain:
		obj, err = r.domain(f, info)
		if err != nil {
			return nil, err
		}

	case ot.IsList():
		compact, err := f.optionalUint(KeyCompactSubObj, 8, 0)
		if err != nil {
			return nil, err
		}
		if compact != 0 {
			def, err := r.definition(f)
			if err != nil {
				return nil, err
			}
			obj = &CompactArray{ObjectInfo: info, Definition: def, Length: uint8(compact)}
		} else {
			obj, skipped, err = r.expand(f, info)
			if err != nil {
				return nil, err
			}
		}

	default:
		obj = &NullObject{ObjectInfo: info}
	}

	r.traceObject(name, obj, skipped)
	return obj, nil
}

// expand resolves the sub-entries 0..SubNumber-1 of a list object. It also
// returns the subindexes whose sections were absent.
func (r *Resolver) expand(f fields, info ObjectInfo) (*Array, []uint8, error) {
	subNumber, err := f.requiredUint(KeySubNumber, 8)
	if err != nil {
		return nil, nil, err
	}
	flags, err := f.optionalUint(KeyObjFlags, 32, 0)
	if err != nil {
		return nil, nil, err
	}

	index := info.Address.Index()
	entries := make([]Object, 0, subNumber)
	var skipped []uint8

	for i := 0; i < int(subNumber); i++ {
		sub := uint8(i)
		childName := SubObjectSection(index, sub)

		child, err := r.resolve(childName, NewAddress(index, sub), true)
		if err != nil {
			if isMissingSection(err, childName) {
				r.debugLog("sub-object section absent, skipping",
					"section", childName, "object", info.Address.String())
				skipped = append(skipped, sub)
				continue
			}
			return nil, nil, err
		}
		entries = append(entries, child)
	}

	if info.ObjectType == ObjectArray {
		if err := checkHomogeneous(index, entries); err != nil {
			return nil, nil, err
		}
	}

	return &Array{
		ObjectInfo: info,
		SubNumber:  uint8(subNumber),
		Entries:    entries,
		Flags:      ObjFlags(flags),
	}, skipped, nil
}

// checkHomogeneous compares every entry except subindex 0 against the entry
// at subindex 1. Subindex 0 usually holds the element count and may differ.
func checkHomogeneous(index uint16, entries []Object) error {
	var ref Object
	for _, e := range entries {
		if e.Info().Address.Subindex() == 1 {
			ref = e
			break
		}
	}
	if ref == nil {
		return nil
	}
	refType, refHasType := DataTypeOf(ref)

	for _, e := range entries {
		ea := e.Info().Address
		if ea.Subindex() == 0 {
			continue
		}
		dt, hasType := DataTypeOf(e)
		if e.Info().ObjectType != ref.Info().ObjectType || dt != refType || hasType != refHasType {
			return &Error{
				Kind:    ErrInconsistentArray,
				Section: SubObjectSection(index, ea.Subindex()),
				Address: addrPtr(ea),
				Value:   fmt.Sprintf("%v/%v", e.Info().ObjectType, dt),
			}
		}
	}
	return nil
}

// definition reads the typed fields of a variable or compact array.
func (r *Resolver) definition(f fields) (Definition, error) {
	rawAccess, err := f.required(KeyAccessType)
	if err != nil {
		return Definition{}, err
	}
	access, ok := ParseAccessMode(rawAccess)
	if !ok {
		return Definition{}, f.fail(ErrInvalidAccessMode, KeyAccessType, rawAccess)
	}

	flags, err := f.optionalUint(KeyObjFlags, 32, 0)
	if err != nil {
		return Definition{}, err
	}

	code, err := f.requiredUint(KeyDataType, 16)
	if err != nil {
		return Definition{}, err
	}
	dt, ok := ParseDataType(uint16(code))
	if !ok {
		return Definition{}, f.fail(ErrInvalidDataType, KeyDataType, fmt.Sprintf("0x%04X", code))
	}

	def, err := f.optionalValue(KeyDefaultValue, dt)
	if err != nil {
		return Definition{}, err
	}
	low, err := f.optionalValue(KeyLowLimit, dt)
	if err != nil {
		return Definition{}, err
	}
	high, err := f.optionalValue(KeyHighLimit, dt)
	if err != nil {
		return Definition{}, err
	}

	pdo, err := f.optionalBool(KeyPDOMapping)
	if err != nil {
		return Definition{}, err
	}

	if !access.IsValid(pdo) {
		return Definition{}, f.fail(ErrPDOAccessMismatch, KeyAccessType, access.String())
	}
	if err := f.checkLimits(dt, low != nil, high != nil); err != nil {
		return Definition{}, err
	}

	return Definition{
		DataType:   dt,
		AccessMode: access,
		Default:    def,
		LowLimit:   low,
		HighLimit:  high,
		PDOMapping: pdo,
		Flags:      ObjFlags(flags),
	}, nil
}

// domain reads a DOMAIN object. AccessType defaults to rw and DataType to
// DOMAIN when absent.
func (r *Resolver) domain(f fields, info ObjectInfo) (*DomainObject, error) {
	access := AccessReadWrite
	if rawAccess, ok := f.sec.Value(KeyAccessType); ok {
		access, ok = ParseAccessMode(rawAccess)
		if !ok {
			return nil, f.fail(ErrInvalidAccessMode, KeyAccessType, rawAccess)
		}
	}

	flags, err := f.optionalUint(KeyObjFlags, 32, 0)
	if err != nil {
		return nil, err
	}

	dt := DataTypeDomain
	if _, present := f.sec.Value(KeyDataType); present {
		code, err := f.requiredUint(KeyDataType, 16)
		if err != nil {
			return nil, err
		}
		var ok bool
		dt, ok = ParseDataType(uint16(code))
		if !ok {
			return nil, f.fail(ErrInvalidDataType, KeyDataType, fmt.Sprintf("0x%04X", code))
		}
	}

	def, err := f.optionalValue(KeyDefaultValue, dt)
	if err != nil {
		return nil, err
	}
	low, err := f.optionalValue(KeyLowLimit, dt)
	if err != nil {
		return nil, err
	}
	high, err := f.optionalValue(KeyHighLimit, dt)
	if err != nil {
		return nil, err
	}

	pdo, err := f.optionalBool(KeyPDOMapping)
	if err != nil {
		return nil, err
	}
	if !access.IsValid(pdo) {
		return nil, f.fail(ErrPDOAccessMismatch, KeyAccessType, access.String())
	}
	if err := f.checkLimits(dt, low != nil, high != nil); err != nil {
		return nil, err
	}

	return &DomainObject{
		ObjectInfo: info,
		DataType:   dt,
		AccessMode: access,
		PDOMapping: pdo,
		Default:    def,
		Flags:      ObjFlags(flags),
	}, nil
}

// ResolveList resolves every object named by one of the object list sections.
func (r *Resolver) ResolveList(list ObjectList) (map[Address]Object, error) {
	name := string(list)
	sec, ok := r.Store.Section(name)
	if !ok {
		return nil, missingSection(name, nil)
	}
	f := fields{sec: sec}

	count, err := f.requiredUint(KeySupportedObjects, 16)
	if err != nil {
		return nil, err
	}

	out := make(map[Address]Object, count)
	for i := 1; i <= int(count); i++ {
		key := strconv.Itoa(i)
		index, err := f.requiredUint(key, 16)
		if err != nil {
			return nil, err
		}

		addr := NewAddress(uint16(index), 0)
		if _, dup := out[addr]; dup {
			return nil, &Error{Kind: ErrDuplicateObject, Section: name, Field: key, Address: addrPtr(addr)}
		}

		obj, err := r.ResolveObject(addr)
		if err != nil {
			return nil, err
		}
		out[addr] = obj
	}

	r.debugLog("object list resolved", "list", name, "objects", len(out))
	r.trace(log.Event{
		Stage:    log.StageAssemble,
		Category: log.CategoryList,
		Section:  name,
		List:     &log.ListEvent{Name: name, Declared: int(count), Resolved: len(out)},
	})
	return out, nil
}

// ResolveDictionary resolves the mandatory, optional and manufacturer object
// lists in that order and stops at the first error.
func (r *Resolver) ResolveDictionary() (*Dictionary, error) {
	d := &Dictionary{}
	for _, list := range ObjectLists() {
		objs, err := r.ResolveList(list)
		if err != nil {
			return nil, err
		}
		d.set(list, objs)
	}
	return d, nil
}

func (r *Resolver) debugLog(msg string, args ...any) {
	if r.Logger != nil {
		r.Logger.Debug(msg, args...)
	}
}

func (r *Resolver) trace(ev log.Event) {
	if r.Trace == nil {
		return
	}
	ev.Timestamp = time.Now()
	ev.LoadID = r.LoadID
	ev.Source = r.Source
	r.Trace.Log(ev)
}

func (r *Resolver) traceObject(section string, obj Object, skipped []uint8) {
	if r.Trace == nil {
		return
	}
	info := obj.Info()
	oe := &log.ObjectEvent{
		Index:      info.Address.Index(),
		Subindex:   info.Address.Subindex(),
		Name:       info.Name,
		ObjectType: uint8(info.ObjectType),
		Shape:      obj.Shape().String(),
		Skipped:    skipped,
	}
	if dt, ok := DataTypeOf(obj); ok {
		code := uint16(dt)
		oe.DataType = &code
	}
	if arr, ok := obj.(*Array); ok {
		oe.Entries = len(arr.Entries)
	}
	r.trace(log.Event{
		Stage:    log.StageResolve,
		Category: log.CategoryObject,
		Section:  section,
		Object:   oe,
	})
}

func isMissingSection(err error, section string) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == ErrMissingSection && e.Section == section
}

// fields reads typed keys of one section and attaches context to failures.
type fields struct {
	sec  Section
	addr *Address
}

func (f fields) fail(kind error, field, value string) *Error {
	return &Error{Kind: kind, Section: f.sec.Name(), Field: field, Address: f.addr, Value: value}
}

func (f fields) required(key string) (string, error) {
	v, ok := f.sec.Value(key)
	if !ok {
		return "", missingField(f.sec.Name(), key, f.addr)
	}
	return v, nil
}

func (f fields) requiredUint(key string, bits int) (uint64, error) {
	raw, err := f.required(key)
	if err != nil {
		return 0, err
	}
	v, err := ParseUnsigned(raw, bits)
	if err != nil {
		return 0, decodeError(f.sec.Name(), key, raw, f.addr, err)
	}
	return v, nil
}

func (f fields) optionalUint(key string, bits int, def uint64) (uint64, error) {
	raw, ok := f.sec.Value(key)
	if !ok {
		return def, nil
	}
	v, err := ParseUnsigned(raw, bits)
	if err != nil {
		return 0, decodeError(f.sec.Name(), key, raw, f.addr, err)
	}
	return v, nil
}

func (f fields) optionalBool(key string) (bool, error) {
	raw, ok := f.sec.Value(key)
	if !ok {
		return false, nil
	}
	b, err := ParseBool(raw)
	if err != nil {
		return false, decodeError(f.sec.Name(), key, raw, f.addr, err)
	}
	return b, nil
}

func (f fields) optionalValue(key string, dt DataType) (*Value, error) {
	raw, ok := f.sec.Value(key)
	if !ok {
		return nil, nil
	}
	v, err := DecodeValue(raw, dt)
	if err != nil {
		return nil, decodeError(f.sec.Name(), key, raw, f.addr, err)
	}
	return &v, nil
}

func (f fields) checkLimits(dt DataType, low, high bool) error {
	if dt.SupportsLimits() {
		return nil
	}
	switch {
	case low:
		return f.fail(ErrLimitsNotSupported, KeyLowLimit, dt.String())
	case high:
		return f.fail(ErrLimitsNotSupported, KeyHighLimit, dt.String())
	}
	return nil
}
