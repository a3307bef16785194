package inspect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Inspector errors.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrEntryNotFound  = errors.New("sub-entry not found")
	ErrUnknownList    = errors.New("unknown object list")
)

// Inspector provides read-only inspection of a loaded data sheet.
type Inspector struct {
	file *eds.File
}

// NewInspector creates a new Inspector for the given data sheet.
func NewInspector(file *eds.File) *Inspector {
	return &Inspector{file: file}
}

// File returns the underlying data sheet.
func (i *Inspector) File() *eds.File {
	return i.file
}

// ObjectInfo describes a looked-up object for display.
type ObjectInfo struct {
	Object eds.Object
	List   eds.ObjectList
	Area   string
}

// Get looks up the object or sub-entry named by path.
func (i *Inspector) Get(path *Path) (*ObjectInfo, error) {
	top, list, ok := i.file.Dictionary.LookupObject(path.Index)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04X", ErrObjectNotFound, path.Index)
	}

	obj := top
	if path.HasSubindex {
		obj, _, ok = i.file.Dictionary.Lookup(path.Address())
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, path.Address())
		}
	}

	return &ObjectInfo{Object: obj, List: list, Area: AreaName(path.Index)}, nil
}

// Rows returns the listing rows of one object list, ordered by address.
func (i *Inspector) Rows(list eds.ObjectList) []ObjectRow {
	objs := i.file.Dictionary.Objects(list)
	rows := make([]ObjectRow, len(objs))
	for n, obj := range objs {
		rows[n] = RowOf(obj)
	}
	return rows
}

// RowOf builds the listing row of one object.
func RowOf(obj eds.Object) ObjectRow {
	info := obj.Info()
	row := ObjectRow{
		Address: info.Address,
		Name:    info.Name,
		Shape:   obj.Shape().String(),
	}
	if dt, ok := eds.DataTypeOf(obj); ok {
		row.Type = dt.String()
	}
	switch o := obj.(type) {
	case *eds.Variable:
		row.Access = o.AccessMode.String()
	case *eds.CompactArray:
		row.Access = o.AccessMode.String()
	case *eds.DomainObject:
		row.Access = o.AccessMode.String()
	}
	return row
}

// ListObjects returns the listing of the named object list, or of all lists
// when name is empty.
func (i *Inspector) ListObjects(name string) (map[eds.ObjectList][]ObjectRow, error) {
	lists := eds.ObjectLists()
	if name != "" {
		list, ok := eds.ParseObjectList(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownList, name)
		}
		lists = []eds.ObjectList{list}
	}

	out := make(map[eds.ObjectList][]ObjectRow, len(lists))
	for _, l := range lists {
		out[l] = i.Rows(l)
	}
	return out, nil
}

// Summary is the header overview of a data sheet.
type Summary struct {
	FileName    string
	Version     string
	Description string
	Vendor      string
	VendorID    uint32
	Product     string
	ProductCode uint32
	Revision    uint32
	BaudRates   []uint16
	RXPDOs      uint16
	TXPDOs      uint16
	Objects     map[eds.ObjectList]int
}

// Summarize returns the header overview of the data sheet.
func (i *Inspector) Summarize() *Summary {
	fi, di := i.file.FileInfo, i.file.DeviceInfo
	s := &Summary{
		FileName:    fi.FileName,
		Version:     fmt.Sprintf("%d.%d", fi.FileVersion, fi.FileRevision),
		Description: fi.Description,
		Vendor:      di.VendorName,
		VendorID:    di.VendorNumber,
		Product:     di.ProductName,
		ProductCode: di.ProductNumber,
		Revision:    di.RevisionNumber,
		BaudRates:   di.BaudRates,
		RXPDOs:      di.NrOfRXPDO,
		TXPDOs:      di.NrOfTXPDO,
		Objects:     make(map[eds.ObjectList]int),
	}
	for _, l := range eds.ObjectLists() {
		s.Objects[l] = len(i.file.Dictionary.List(l))
	}
	return s
}

// FormatSummary formats a summary for display.
func (i *Inspector) FormatSummary(s *Summary, f *Formatter) string {
	var sb strings.Builder
	line := func(name, value string) {
		sb.WriteString(f.Indent(0, fmt.Sprintf("%-13s %s\n", name+":", value)))
	}

	line("File", fmt.Sprintf("%s (version %s)", s.FileName, s.Version))
	line("Description", s.Description)
	line("Vendor", fmt.Sprintf("%s (0x%08X)", s.Vendor, s.VendorID))
	line("Product", fmt.Sprintf("%s (0x%08X, revision 0x%08X)", s.Product, s.ProductCode, s.Revision))

	rates := make([]string, len(s.BaudRates))
	for n, r := range s.BaudRates {
		rates[n] = fmt.Sprintf("%d", r)
	}
	line("Baud rates", strings.Join(rates, ", ")+" kbit/s")
	line("PDOs", fmt.Sprintf("%d RX, %d TX", s.RXPDOs, s.TXPDOs))

	for _, l := range eds.ObjectLists() {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%-20s %d\n", string(l)+":", s.Objects[l])))
	}
	return sb.String()
}

// FormatInfo formats a looked-up object for display.
func (i *Inspector) FormatInfo(info *ObjectInfo, f *Formatter) string {
	var sb strings.Builder
	sb.WriteString(f.FormatObject(info.Object))
	if f.ShowMetadata {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%-12s %s, %s\n", "list:", info.List, info.Area)))
	}
	return sb.String()
}
