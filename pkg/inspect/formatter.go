package inspect

import (
	"fmt"
	"strings"

	"github.com/eds-tools/eds-go/pkg/eds"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes type, access and flag information
	ShowMetadata bool

	// ShowLimits includes LowLimit/HighLimit when present
	ShowLimits bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowLimits:   true,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a decoded value for display.
func (f *Formatter) FormatValue(v *eds.Value) string {
	if v == nil {
		return "-"
	}
	switch v.Kind() {
	case eds.DataTypeBoolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	case eds.DataTypeInt8, eds.DataTypeInt16, eds.DataTypeInt32, eds.DataTypeInt64:
		return fmt.Sprintf("%d", v.Int())
	case eds.DataTypeUInt8, eds.DataTypeUInt16, eds.DataTypeUInt32, eds.DataTypeUInt64:
		return fmt.Sprintf("%d (0x%X)", v.Uint(), v.Uint())
	default:
		return v.String()
	}
}

// FormatAccess formats an access mode for display.
func FormatAccess(m eds.AccessMode) string {
	switch m {
	case eds.AccessConst:
		return "const"
	case eds.AccessReadOnly:
		return "read-only"
	case eds.AccessWriteOnly:
		return "write-only"
	case eds.AccessReadWrite:
		return "read-write"
	case eds.AccessReadWritePDORead:
		return "read-write (TPDO)"
	case eds.AccessReadWritePDOWrite:
		return "read-write (RPDO)"
	default:
		return fmt.Sprintf("access(%d)", m)
	}
}

// FormatFlags formats an ObjFlags bit field.
func FormatFlags(fl eds.ObjFlags) string {
	if fl == 0 {
		return "0x0 (none)"
	}
	var names []string
	if fl.RefuseWriteOnDownload() {
		names = append(names, "refuse-write-on-download")
	}
	if fl.RefuseReadOnScan() {
		names = append(names, "refuse-read-on-scan")
	}
	if len(names) == 0 {
		return fmt.Sprintf("0x%X", uint32(fl))
	}
	return fmt.Sprintf("0x%X (%s)", uint32(fl), strings.Join(names, ", "))
}

// FormatObject formats one object and, for expanded arrays, its entries.
func (f *Formatter) FormatObject(obj eds.Object) string {
	var sb strings.Builder
	f.writeObject(&sb, obj, 0)
	return sb.String()
}

func (f *Formatter) writeObject(sb *strings.Builder, obj eds.Object, depth int) {
	info := obj.Info()
	sb.WriteString(f.Indent(depth, fmt.Sprintf("%s %s [%s]\n", info.Address, info.Name, info.ObjectType)))

	if !f.ShowMetadata {
		if arr, ok := obj.(*eds.Array); ok {
			for _, e := range arr.Entries {
				f.writeObject(sb, e, depth+1)
			}
		}
		return
	}

	field := func(name, value string) {
		sb.WriteString(f.Indent(depth+1, fmt.Sprintf("%-12s %s\n", name+":", value)))
	}

	switch o := obj.(type) {
	case *eds.NullObject:
		field("shape", o.Shape().String())

	case *eds.Variable:
		f.writeDefinition(field, o.Definition)

	case *eds.CompactArray:
		field("length", fmt.Sprintf("%d", o.Length))
		f.writeDefinition(field, o.Definition)

	case *eds.DomainObject:
		field("type", o.DataType.String())
		field("access", FormatAccess(o.AccessMode))
		field("default", f.FormatValue(o.Default))
		if o.PDOMapping {
			field("pdo", "mappable")
		}
		field("flags", FormatFlags(o.Flags))

	case *eds.Array:
		field("subnumber", fmt.Sprintf("%d", o.SubNumber))
		field("flags", FormatFlags(o.Flags))
		for _, e := range o.Entries {
			f.writeObject(sb, e, depth+1)
		}
	}
}

func (f *Formatter) writeDefinition(field func(name, value string), def eds.Definition) {
	field("type", def.DataType.String())
	field("access", FormatAccess(def.AccessMode))
	field("default", f.FormatValue(def.Default))
	if f.ShowLimits && (def.LowLimit != nil || def.HighLimit != nil) {
		field("limits", fmt.Sprintf("%s .. %s", f.FormatValue(def.LowLimit), f.FormatValue(def.HighLimit)))
	}
	if def.PDOMapping {
		field("pdo", "mappable")
	}
	field("flags", FormatFlags(def.Flags))
}

// ObjectRow represents one object in a listing.
type ObjectRow struct {
	Address eds.Address
	Name    string
	Shape   string
	Type    string
	Access  string
}

// FormatObjectTable formats a listing of objects as a table.
func (f *Formatter) FormatObjectTable(rows []ObjectRow) string {
	if len(rows) == 0 {
		return "  (no objects)\n"
	}

	var sb strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&sb, "  %s  %-36s", row.Address, row.Name)
		if f.ShowMetadata {
			fmt.Fprintf(&sb, " %-13s %-15s %s", row.Shape, row.Type, row.Access)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
