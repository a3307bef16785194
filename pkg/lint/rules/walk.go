package rules

import "github.com/eds-tools/eds-go/pkg/eds"

// eachObject calls fn for every object of d in list then address order,
// including the entries of expanded arrays right after their parent.
func eachObject(d *eds.Dictionary, fn func(list eds.ObjectList, obj eds.Object)) {
	for _, list := range eds.ObjectLists() {
		for _, obj := range d.Objects(list) {
			fn(list, obj)
			if arr, ok := obj.(*eds.Array); ok {
				for _, e := range arr.Entries {
					fn(list, e)
				}
			}
		}
	}
}

// countIndexes returns how many top-level objects have an index in [lo, hi].
func countIndexes(d *eds.Dictionary, lo, hi uint16) int {
	n := 0
	for _, list := range eds.ObjectLists() {
		for addr := range d.List(list) {
			if addr.Index() >= lo && addr.Index() <= hi {
				n++
			}
		}
	}
	return n
}
