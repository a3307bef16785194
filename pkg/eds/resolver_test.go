package eds

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eds-tools/eds-go/pkg/ini"
	"github.com/eds-tools/eds-go/pkg/log"
)

// requireKind asserts err is an *Error of the given kind and returns it.
func requireKind(t *testing.T, err error, kind error) *Error {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var e *Error
	require.ErrorAs(t, err, &e)
	return e
}

func resolveOne(t *testing.T, text string, index uint16) (Object, error) {
	t.Helper()
	return NewResolver(storeOf(t, text)).ResolveObject(NewAddress(index, 0))
}

func TestResolveVariable(t *testing.T) {
	obj, err := resolveOne(t, `
[2000]
ParameterName=Target velocity
ObjectType=0x7
DataType=0x0004
AccessType=RWW
PDOMapping=1
LowLimit=-3000
HighLimit=3000
DefaultValue=0x10
ObjFlags=3
`, 0x2000)
	require.NoError(t, err)

	v, ok := obj.(*Variable)
	require.True(t, ok, "got %T", obj)
	assert.Equal(t, ShapeVariable, v.Shape())
	assert.Equal(t, NewAddress(0x2000, 0), v.Address)
	assert.Equal(t, "Target velocity", v.Name)
	assert.Equal(t, ObjectVariable, v.ObjectType)
	assert.Equal(t, DataTypeInt32, v.DataType)
	assert.Equal(t, AccessReadWritePDOWrite, v.AccessMode)
	assert.True(t, v.PDOMapping)
	require.NotNil(t, v.Default)
	assert.Equal(t, int64(16), v.Default.Int())
	require.NotNil(t, v.LowLimit)
	assert.Equal(t, int64(-3000), v.LowLimit.Int())
	require.NotNil(t, v.HighLimit)
	assert.Equal(t, int64(3000), v.HighLimit.Int())
	assert.True(t, v.Flags.RefuseWriteOnDownload())
	assert.True(t, v.Flags.RefuseReadOnScan())
}

func TestResolveVariableDefaults(t *testing.T) {
	obj, err := resolveOne(t, `
[1001]
parametername=Error register
OBJECTTYPE=7
DataType=5
AccessType=ro
`, 0x1001)
	require.NoError(t, err)

	v := obj.(*Variable)
	assert.False(t, v.PDOMapping, "PDOMapping defaults to false")
	assert.Zero(t, v.Flags, "ObjFlags defaults to 0")
	assert.False(t, v.Flags.RefuseWriteOnDownload())
	assert.False(t, v.Flags.RefuseReadOnScan())
	assert.Nil(t, v.Default)
	assert.Nil(t, v.LowLimit)
	assert.Nil(t, v.HighLimit)
}

func TestResolveDeftypeIsVariable(t *testing.T) {
	obj, err := resolveOne(t, `
[7]
ParameterName=UNSIGNED32
ObjectType=0x5
DataType=0x0007
AccessType=ro
DefaultValue=32
`, 0x7)
	require.NoError(t, err)
	v := obj.(*Variable)
	assert.Equal(t, ObjectDeftype, v.ObjectType)
	assert.Equal(t, uint64(32), v.Default.Uint())
}

func TestResolveDomain(t *testing.T) {
	obj, err := resolveOne(t, `
[2100]
ParameterName=Firmware
ObjectType=0x2
`, 0x2100)
	require.NoError(t, err)

	d, ok := obj.(*DomainObject)
	require.True(t, ok, "got %T", obj)
	assert.Equal(t, DataTypeDomain, d.DataType, "DataType defaults to DOMAIN")
	assert.Equal(t, AccessReadWrite, d.AccessMode)
	assert.Nil(t, d.Default)

	obj, err = resolveOne(t, `
[2100]
ParameterName=Firmware
ObjectType=0x2
DataType=0x000A
AccessType=wo
DefaultValue=0a1
ObjFlags=1
`, 0x2100)
	require.NoError(t, err)
	d = obj.(*DomainObject)
	assert.Equal(t, DataTypeOctetString, d.DataType)
	assert.Equal(t, AccessWriteOnly, d.AccessMode)
	assert.Equal(t, []byte{0, 0xA, 1}, d.Default.Bytes())
	assert.True(t, d.Flags.RefuseWriteOnDownload())
	assert.False(t, d.PDOMapping)

	obj, err = resolveOne(t, `
[2100]
ParameterName=Stream
ObjectType=0x2
AccessType=rwr
PDOMapping=1
`, 0x2100)
	require.NoError(t, err)
	d = obj.(*DomainObject)
	assert.Equal(t, AccessReadWritePDORead, d.AccessMode)
	assert.True(t, d.PDOMapping)
}

func TestResolveNull(t *testing.T) {
	obj, err := resolveOne(t, `
[5]
ParameterName=Reserved
ObjectType=0
`, 0x5)
	require.NoError(t, err)
	assert.Equal(t, ShapeNull, obj.Shape())
	assert.Equal(t, "Reserved", obj.Info().Name)
}

func TestResolveCompactArray(t *testing.T) {
	obj, err := resolveOne(t, `
[1600]
ParameterName=RPDO1 mapping
ObjectType=0x8
CompactSubObj=8
DataType=0x0007
AccessType=rw
DefaultValue=0
`, 0x1600)
	require.NoError(t, err)

	c, ok := obj.(*CompactArray)
	require.True(t, ok, "got %T", obj)
	assert.Equal(t, uint8(8), c.Length)
	assert.Equal(t, DataTypeUInt32, c.DataType)
	assert.Equal(t, AccessReadWrite, c.AccessMode)
}

func TestResolveZeroCompactSubObjExpands(t *testing.T) {
	obj, err := resolveOne(t, `
[1600]
ParameterName=RPDO1 mapping
ObjectType=0x8
CompactSubObj=0
SubNumber=1

[1600sub0]
ParameterName=Count
ObjectType=0x7
DataType=0x0005
AccessType=ro
`, 0x1600)
	require.NoError(t, err)
	assert.Equal(t, ShapeArray, obj.Shape())
}

const identityRecord = `
[1018]
ParameterName=Identity
ObjectType=0x9
SubNumber=3
ObjFlags=0x2

[1018sub0]
ParameterName=Highest sub-index
ObjectType=0x7
DataType=0x0005
AccessType=const
DefaultValue=2

[1018sub1]
ParameterName=Vendor-ID
ObjectType=0x7
DataType=0x0007
AccessType=ro

[1018sub2]
ParameterName=Product code
ObjectType=0x7
DataType=0x0007
AccessType=ro
`

func TestResolveExpandedRecord(t *testing.T) {
	obj, err := resolveOne(t, identityRecord, 0x1018)
	require.NoError(t, err)

	a, ok := obj.(*Array)
	require.True(t, ok, "got %T", obj)
	assert.Equal(t, ObjectRecord, a.ObjectType)
	assert.Equal(t, uint8(3), a.SubNumber)
	assert.True(t, a.Flags.RefuseReadOnScan())
	require.Len(t, a.Entries, 3)

	for i, e := range a.Entries {
		assert.Equal(t, NewAddress(0x1018, uint8(i)), e.Info().Address)
	}
	sub1, ok := a.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "Vendor-ID", sub1.Info().Name)

	_, ok = a.Entry(3)
	assert.False(t, ok)
}

func TestResolveSkipsMissingSubSection(t *testing.T) {
	obj, err := resolveOne(t, `
[1800]
ParameterName=TPDO1
ObjectType=0x9
SubNumber=3

[1800sub0]
ParameterName=Highest sub-index
ObjectType=0x7
DataType=0x0005
AccessType=const

[1800sub2]
ParameterName=Transmission type
ObjectType=0x7
DataType=0x0005
AccessType=rw
`, 0x1800)
	require.NoError(t, err)

	a := obj.(*Array)
	require.Len(t, a.Entries, 2)
	assert.Equal(t, uint8(0), a.Entries[0].Info().Address.Subindex())
	assert.Equal(t, uint8(2), a.Entries[1].Info().Address.Subindex())
}

func TestResolveFailingChildAborts(t *testing.T) {
	_, err := resolveOne(t, `
[1018]
ParameterName=Identity
ObjectType=0x9
SubNumber=2

[1018sub0]
ParameterName=Highest sub-index
ObjectType=0x7
DataType=0x0005
AccessType=const

[1018sub1]
ParameterName=Vendor-ID
ObjectType=0x7
AccessType=ro
`, 0x1018)

	e := requireKind(t, err, ErrMissingField)
	assert.Equal(t, "1018sub1", e.Section)
	assert.Equal(t, KeyDataType, e.Field)
	require.NotNil(t, e.Address)
	assert.Equal(t, NewAddress(0x1018, 1), *e.Address)
}

func TestResolveRejectsNestedList(t *testing.T) {
	for _, ot := range []string{"0x6", "0x8", "0x9"} {
		_, err := resolveOne(t, `
[2000]
ParameterName=Outer
ObjectType=0x9
SubNumber=2

[2000sub0]
ParameterName=Count
ObjectType=0x7
DataType=0x0005
AccessType=ro

[2000sub1]
ParameterName=Inner
ObjectType=`+ot+`
SubNumber=1
`, 0x2000)

		e := requireKind(t, err, ErrNestedList)
		assert.Equal(t, NewAddress(0x2000, 1), *e.Address, ot)
	}
}

func TestResolveRejectsNestedCompactList(t *testing.T) {
	_, err := resolveOne(t, `
[2000]
ParameterName=Outer
ObjectType=0x9
SubNumber=1

[2000sub0]
ParameterName=Inner
ObjectType=0x8
CompactSubObj=4
DataType=0x0005
AccessType=ro
`, 0x2000)
	requireKind(t, err, ErrNestedList)
}

func TestResolveArrayHomogeneity(t *testing.T) {
	base := `
[2001]
ParameterName=Gains
ObjectType=0x8
SubNumber=4

[2001sub0]
ParameterName=Count
ObjectType=0x7
DataType=0x0005
AccessType=ro

[2001sub1]
ParameterName=P
ObjectType=0x7
DataType=0x0003
AccessType=rw

[2001sub2]
ParameterName=I
ObjectType=0x7
DataType=0x0003
AccessType=rw

[2001sub3]
ParameterName=D
ObjectType=0x7
DataType=0x0003
AccessType=rw
`
	t.Run("subindex 0 may differ", func(t *testing.T) {
		obj, err := resolveOne(t, base, 0x2001)
		require.NoError(t, err)
		assert.Len(t, obj.(*Array).Entries, 4)
	})

	t.Run("first disagreeing child is reported", func(t *testing.T) {
		text := base + "\n[2001sub4]\nParameterName=X\nObjectType=0x7\nDataType=0x0007\nAccessType=rw\n"
		text = replaceLine(text, "SubNumber=4", "SubNumber=5")

		_, err := resolveOne(t, text, 0x2001)
		e := requireKind(t, err, ErrInconsistentArray)
		assert.Equal(t, NewAddress(0x2001, 4), *e.Address)
	})

	t.Run("object type mismatch", func(t *testing.T) {
		text := base + "\n[2001sub4]\nParameterName=X\nObjectType=0x0\n"
		text = replaceLine(text, "SubNumber=4", "SubNumber=5")
		_, err := resolveOne(t, text, 0x2001)
		e := requireKind(t, err, ErrInconsistentArray)
		assert.Equal(t, NewAddress(0x2001, 4), *e.Address)
	})

	t.Run("records are not checked", func(t *testing.T) {
		text := base + "\n[2001sub4]\nParameterName=X\nObjectType=0x7\nDataType=0x0007\nAccessType=rw\n"
		text = replaceLine(text, "SubNumber=4", "SubNumber=5")
		text = replaceLine(text, "ObjectType=0x8", "ObjectType=0x9")
		_, err := resolveOne(t, text, 0x2001)
		assert.NoError(t, err)
	})

	t.Run("no subindex 1 means nothing to compare", func(t *testing.T) {
		_, err := resolveOne(t, `
[2002]
ParameterName=Sparse
ObjectType=0x8
SubNumber=4

[2002sub2]
ParameterName=A
ObjectType=0x7
DataType=0x0003
AccessType=rw

[2002sub3]
ParameterName=B
ObjectType=0x7
DataType=0x0007
AccessType=rw
`, 0x2002)
		assert.NoError(t, err)
	})
}

func TestResolveFieldErrors(t *testing.T) {
	const variable = `
[2000]
ParameterName=Value
ObjectType=0x7
DataType=0x0005
AccessType=rw
`
	tests := []struct {
		name  string
		text  string
		kind  error
		field string
	}{
		{"missing section", "[1]\nParameterName=x\n", ErrMissingSection, ""},
		{"missing name", replaceLine(variable, "ParameterName", ""), ErrMissingField, KeyParameterName},
		{"missing object type", replaceLine(variable, "ObjectType", ""), ErrMissingField, KeyObjectType},
		{"bad object type number", replaceLine(variable, "ObjectType", "ObjectType=seven"), ErrInvalidNumber, KeyObjectType},
		{"object type too wide", replaceLine(variable, "ObjectType", "ObjectType=0x107"), ErrInvalidNumber, KeyObjectType},
		{"unknown object type", replaceLine(variable, "ObjectType", "ObjectType=0x3"), ErrInvalidObjectType, KeyObjectType},
		{"missing access", replaceLine(variable, "AccessType", ""), ErrMissingField, KeyAccessType},
		{"unknown access", replaceLine(variable, "AccessType", "AccessType=rx"), ErrInvalidAccessMode, KeyAccessType},
		{"missing data type", replaceLine(variable, "DataType", ""), ErrMissingField, KeyDataType},
		{"unknown data type", replaceLine(variable, "DataType", "DataType=0x000C"), ErrInvalidDataType, KeyDataType},
		{"default overflow", variable + "DefaultValue=256\n", ErrInvalidNumber, KeyDefaultValue},
		{"bad flags", variable + "ObjFlags=0x100000000\n", ErrInvalidNumber, KeyObjFlags},
		{"bad pdo flag", variable + "PDOMapping=yes\n", ErrInvalidFormat, KeyPDOMapping},
		{"rw mappable", variable + "PDOMapping=1\n", ErrPDOAccessMismatch, KeyAccessType},
		{"rwr not mappable", replaceLine(variable, "AccessType", "AccessType=rwr"), ErrPDOAccessMismatch, KeyAccessType},
		{"limit on string", replaceLine(variable, "DataType", "DataType=0x0009") + "LowLimit=a\n", ErrLimitsNotSupported, KeyLowLimit},
		{"limit on boolean", replaceLine(variable, "DataType", "DataType=0x0001") + "HighLimit=1\n", ErrLimitsNotSupported, KeyHighLimit},
		{"non-ascii visible string", replaceLine(variable, "DataType", "DataType=0x0009") + "DefaultValue=Grüße\n", ErrInvalidFormat, KeyDefaultValue},
		{"domain bad access", "[2000]\nParameterName=D\nObjectType=2\nAccessType=x\n", ErrInvalidAccessMode, KeyAccessType},
		{"domain limits", "[2000]\nParameterName=D\nObjectType=2\nLowLimit=1\n", ErrLimitsNotSupported, KeyLowLimit},
		{"domain bad pdo flag", "[2000]\nParameterName=D\nObjectType=2\nPDOMapping=7\n", ErrInvalidFormat, KeyPDOMapping},
		{"domain rw mappable", "[2000]\nParameterName=D\nObjectType=2\nAccessType=rw\nPDOMapping=1\n", ErrPDOAccessMismatch, KeyAccessType},
		{"domain default rw mappable", "[2000]\nParameterName=D\nObjectType=2\nPDOMapping=1\n", ErrPDOAccessMismatch, KeyAccessType},
		{"domain rwr not mappable", "[2000]\nParameterName=D\nObjectType=2\nAccessType=rwr\n", ErrPDOAccessMismatch, KeyAccessType},
		{"list without SubNumber", "[2000]\nParameterName=L\nObjectType=9\n", ErrMissingField, KeySubNumber},
		{"compact without access", "[2000]\nParameterName=L\nObjectType=8\nCompactSubObj=2\nDataType=5\n", ErrMissingField, KeyAccessType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveOne(t, tt.text, 0x2000)
			e := requireKind(t, err, tt.kind)
			assert.Equal(t, tt.field, e.Field)
			require.NotNil(t, e.Address)
			assert.Equal(t, uint16(0x2000), e.Address.Index())
		})
	}
}

func TestResolveKeepsRawTextOfBadNumbers(t *testing.T) {
	_, err := resolveOne(t, `
[2000]
ParameterName=Value
ObjectType=0x7
DataType=0x0005
AccessType=rw
DefaultValue=0x1FF
`, 0x2000)
	e := requireKind(t, err, ErrInvalidNumber)
	assert.Equal(t, "0x1FF", e.Value)
	var ne *NumeralError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, 16, ne.Base)
	assert.Equal(t, 8, ne.Bits)
}

func TestResolveListDuplicateAddress(t *testing.T) {
	store := storeOf(t, `
[OptionalObjects]
SupportedObjects=2
1=0x1017
2=0x1017

[1017]
ParameterName=Heartbeat
ObjectType=0x7
DataType=0x0006
AccessType=rw
`)
	_, err := NewResolver(store).ResolveList(ListOptional)
	e := requireKind(t, err, ErrDuplicateObject)
	assert.Equal(t, "2", e.Field)
}

func TestResolveListErrors(t *testing.T) {
	r := NewResolver(storeOf(t, "[OptionalObjects]\n1=0x1000\n"))
	_, err := r.ResolveList(ListOptional)
	e := requireKind(t, err, ErrMissingField)
	assert.Equal(t, KeySupportedObjects, e.Field)

	r = NewResolver(storeOf(t, "[FileInfo]\nFileName=x\n"))
	_, err = r.ResolveList(ListManufacturer)
	e = requireKind(t, err, ErrMissingSection)
	assert.Equal(t, "ManufacturerObjects", e.Section)

	r = NewResolver(storeOf(t, "[OptionalObjects]\nSupportedObjects=2\n1=0x5\n3=0x5\n[5]\nParameterName=N\nObjectType=0\n"))
	_, err = r.ResolveList(ListOptional)
	e = requireKind(t, err, ErrMissingField)
	assert.Equal(t, "2", e.Field)
	assert.Equal(t, "OptionalObjects", e.Section)

	r = NewResolver(storeOf(t, "[OptionalObjects]\nSupportedObjects=1\n1=0x10000\n"))
	_, err = r.ResolveList(ListOptional)
	requireKind(t, err, ErrInvalidNumber)
}

// mockStore records the section lookups made by the resolver.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Section(name string) (Section, bool) {
	args := m.Called(name)
	s, _ := args.Get(0).(Section)
	return s, args.Bool(1)
}

func iniSection(t *testing.T, text, name string) *ini.Section {
	t.Helper()
	f, err := ini.ParseString(text)
	require.NoError(t, err)
	s, ok := f.Section(name)
	require.True(t, ok)
	return s
}

func TestResolveLooksUpChildrenInOrder(t *testing.T) {
	parent := iniSection(t, "[1018]\nParameterName=Identity\nObjectType=0x9\nSubNumber=3\n", "1018")
	sub0 := iniSection(t, "[1018sub0]\nParameterName=N\nObjectType=7\nDataType=5\nAccessType=ro\n", "1018sub0")
	sub2 := iniSection(t, "[1018sub2]\nParameterName=P\nObjectType=7\nDataType=7\nAccessType=ro\n", "1018sub2")

	store := &mockStore{}
	store.On("Section", "1018").Return(parent, true).Once()
	store.On("Section", "1018sub0").Return(sub0, true).Once()
	store.On("Section", "1018sub1").Return(nil, false).Once()
	store.On("Section", "1018sub2").Return(sub2, true).Once()

	obj, err := NewResolver(store).ResolveObject(NewAddress(0x1018, 0))
	require.NoError(t, err)
	assert.Len(t, obj.(*Array).Entries, 2)

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Section", 4)
}

func TestResolveStopsAtFirstFailingChild(t *testing.T) {
	parent := iniSection(t, "[2000]\nParameterName=Table\nObjectType=0x9\nSubNumber=3\n", "2000")
	sub0 := iniSection(t, "[2000sub0]\nParameterName=N\nObjectType=7\nDataType=0xFF\nAccessType=ro\n", "2000sub0")

	store := &mockStore{}
	store.On("Section", "2000").Return(parent, true)
	store.On("Section", "2000sub0").Return(sub0, true)

	_, err := NewResolver(store).ResolveObject(NewAddress(0x2000, 0))
	requireKind(t, err, ErrInvalidDataType)

	store.AssertNotCalled(t, "Section", "2000sub1")
	store.AssertNotCalled(t, "Section", "2000sub2")
}

type captureTrace struct {
	events []log.Event
}

func (c *captureTrace) Log(e log.Event) { c.events = append(c.events, e) }

func TestResolverTracesObjectsAndLists(t *testing.T) {
	store := storeOf(t, `
[MandatoryObjects]
SupportedObjects=1
1=0x1018
`+identityRecord)

	trace := &captureTrace{}
	r := &Resolver{Store: store, Trace: trace, LoadID: "load-1", Source: "x.eds"}
	objs, err := r.ResolveList(ListMandatory)
	require.NoError(t, err)
	require.Len(t, objs, 1)

	// three children, the record, then the list
	require.Len(t, trace.events, 5)
	for _, ev := range trace.events[:4] {
		assert.Equal(t, log.StageResolve, ev.Stage)
		require.NotNil(t, ev.Object)
		assert.Equal(t, "load-1", ev.LoadID)
	}
	rec := trace.events[3].Object
	assert.Equal(t, uint16(0x1018), rec.Index)
	assert.Equal(t, "ARRAY", rec.Shape)
	assert.Equal(t, 3, rec.Entries)

	last := trace.events[4]
	assert.Equal(t, log.StageAssemble, last.Stage)
	require.NotNil(t, last.List)
	assert.Equal(t, "MandatoryObjects", last.List.Name)
	assert.Equal(t, 1, last.List.Resolved)
}

func TestErrorMessageCarriesContext(t *testing.T) {
	_, err := resolveOne(t, "[2000]\nParameterName=x\nObjectType=0x3\n", 0x2000)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid object type")
	assert.Contains(t, msg, "0x2000.00")
	assert.Contains(t, msg, "[2000]")
	assert.Contains(t, msg, "ObjectType")
	assert.Equal(t, "invalid object type", KindName(err))
	assert.Equal(t, "", KindName(errors.New("other")))
}
