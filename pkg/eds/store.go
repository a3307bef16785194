package eds

import "github.com/eds-tools/eds-go/pkg/ini"

// Store is the section store objects are resolved from.
// Lookups ignore case.
type Store interface {
	Section(name string) (Section, bool)
}

// Section is one named group of key=value pairs in a Store.
type Section interface {
	Name() string
	Value(key string) (string, bool)
}

// iniStore adapts an *ini.File to Store.
type iniStore struct {
	file *ini.File
}

// NewStore returns a Store backed by a parsed ini file.
func NewStore(f *ini.File) Store {
	return iniStore{file: f}
}

func (s iniStore) Section(name string) (Section, bool) {
	sec, ok := s.file.Section(name)
	if !ok {
		return nil, false
	}
	return sec, true
}

// Compile-time interface satisfaction check.
var _ Section = (*ini.Section)(nil)
