package eds

import (
	"slices"
	"strings"
)

// ObjectList names one of the top-level object list sections.
type ObjectList string

const (
	ListMandatory    ObjectList = "MandatoryObjects"
	ListOptional     ObjectList = "OptionalObjects"
	ListManufacturer ObjectList = "ManufacturerObjects"
)

// ObjectLists returns the three object lists in resolution order.
func ObjectLists() []ObjectList {
	return []ObjectList{ListMandatory, ListOptional, ListManufacturer}
}

// ParseObjectList maps a list name, ignoring case, or one of the short
// forms "mandatory", "optional" and "manufacturer" to an ObjectList.
func ParseObjectList(s string) (ObjectList, bool) {
	for _, l := range ObjectLists() {
		if strings.EqualFold(s, string(l)) || strings.EqualFold(s, l.Short()) {
			return l, true
		}
	}
	return "", false
}

// Short returns the lower-case short form of the list name.
func (l ObjectList) Short() string {
	switch l {
	case ListMandatory:
		return "mandatory"
	case ListOptional:
		return "optional"
	case ListManufacturer:
		return "manufacturer"
	}
	return string(l)
}

// Dictionary is the resolved object dictionary: one address to object
// mapping per object list. It is not modified after loading.
type Dictionary struct {
	Mandatory    map[Address]Object
	Optional     map[Address]Object
	Manufacturer map[Address]Object
}

func (d *Dictionary) set(list ObjectList, objs map[Address]Object) {
	switch list {
	case ListMandatory:
		d.Mandatory = objs
	case ListOptional:
		d.Optional = objs
	case ListManufacturer:
		d.Manufacturer = objs
	}
}

// List returns the mapping of one object list.
func (d *Dictionary) List(list ObjectList) map[Address]Object {
	switch list {
	case ListMandatory:
		return d.Mandatory
	case ListOptional:
		return d.Optional
	case ListManufacturer:
		return d.Manufacturer
	}
	return nil
}

// Addresses returns the addresses of one object list in ascending order.
func (d *Dictionary) Addresses(list ObjectList) []Address {
	m := d.List(list)
	var keys []Address
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, Address.Compare)
	return keys
}

// Objects returns the objects of one object list ordered by address.
func (d *Dictionary) Objects(list ObjectList) []Object {
	m := d.List(list)
	addrs := d.Addresses(list)
	out := make([]Object, len(addrs))
	for i, a := range addrs {
		out[i] = m[a]
	}
	return out
}

// Len returns the total number of top-level objects.
func (d *Dictionary) Len() int {
	return len(d.Mandatory) + len(d.Optional) + len(d.Manufacturer)
}

// Lookup finds the object at addr in any list. Subindex 0 names the
// top-level object itself; any other subindex is looked up among the entries
// of an expanded array. Lists are searched in resolution order.
func (d *Dictionary) Lookup(addr Address) (Object, ObjectList, bool) {
	top := NewAddress(addr.Index(), 0)
	for _, list := range ObjectLists() {
		obj, ok := d.List(list)[top]
		if !ok {
			continue
		}
		if addr.Subindex() == 0 {
			return obj, list, true
		}
		arr, isArr := obj.(*Array)
		if !isArr {
			return nil, "", false
		}
		sub, found := arr.Entry(addr.Subindex())
		if !found {
			return nil, "", false
		}
		return sub, list, true
	}
	return nil, "", false
}

// LookupObject finds the top-level object with the given index in any list.
func (d *Dictionary) LookupObject(index uint16) (Object, ObjectList, bool) {
	top := NewAddress(index, 0)
	for _, list := range ObjectLists() {
		if obj, ok := d.List(list)[top]; ok {
			return obj, list, true
		}
	}
	return nil, "", false
}
