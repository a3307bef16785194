package eds

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eds-tools/eds-go/pkg/ini"
)

// testdataPath returns the path of a fixture under testdata/eds.
func testdataPath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata", "eds", name)
}

const testHeaders = `
[FileInfo]
FileName=test.eds
FileVersion=1
FileRevision=1
EDSVersion=4.0
Description=test
CreationTime=04:09PM
CreationDate=08-06-2012
CreatedBy=tester
ModificationTime=04:09PM
ModificationDate=08-06-2012
ModifiedBy=tester

[DeviceInfo]
VendorName=Acme
VendorNumber=0x286
ProductName=Widget
ProductNumber=1
RevisionNumber=0x00030012
OrderCode=W-1
BaudRate_10=0
BaudRate_20=0
BaudRate_50=0
BaudRate_125=1
BaudRate_250=1
BaudRate_500=1
BaudRate_800=0
BaudRate_1000=1
SimpleBootUpMaster=0
SimpleBootUpSlave=1
Granularity=8
DynamicChannelsSupported=0
GroupMessaging=0
NrOfRXPDO=5
NrOfTXPDO=5
LSS_Supported=0
`

const emptyLists = `
[MandatoryObjects]
SupportedObjects=0

[OptionalObjects]
SupportedObjects=0

[ManufacturerObjects]
SupportedObjects=0
`

// sheet returns a complete data sheet made of the test headers and body.
func sheet(body string) string {
	return testHeaders + "\n" + body
}

// storeOf parses text into a Store.
func storeOf(t *testing.T, text string) Store {
	t.Helper()
	f, err := ini.ParseString(strings.TrimLeft(text, "\n"))
	require.NoError(t, err)
	return NewStore(f)
}

// replaceLine swaps the first line starting with prefix for repl.
func replaceLine(text, prefix, repl string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, prefix) {
			lines[i] = repl
			break
		}
	}
	return strings.Join(lines, "\n")
}
