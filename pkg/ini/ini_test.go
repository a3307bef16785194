package ini

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSectionsAndValues(t *testing.T) {
	input := `
; leading comment
[FileInfo]
FileName=test.eds
FileVersion=1

[DeviceInfo]
VendorName = Acme Motion
; inside a section
VendorNumber=0x286
`

	f, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	if got := len(f.Sections()); got != 2 {
		t.Fatalf("expected 2 sections, got %d", got)
	}

	fi, ok := f.Section("FileInfo")
	if !ok {
		t.Fatal("expected FileInfo section")
	}
	if v, _ := fi.Value("FileName"); v != "test.eds" {
		t.Errorf("expected FileName=test.eds, got %q", v)
	}
	if fi.Line() != 3 {
		t.Errorf("expected FileInfo on line 3, got %d", fi.Line())
	}

	di, ok := f.Section("DeviceInfo")
	if !ok {
		t.Fatal("expected DeviceInfo section")
	}
	if v, _ := di.Value("VendorName"); v != "Acme Motion" {
		t.Errorf("expected trimmed value, got %q", v)
	}
	if got := di.Keys(); len(got) != 2 || got[0] != "VendorName" || got[1] != "VendorNumber" {
		t.Errorf("unexpected key order %v", got)
	}
}

func TestLookupsIgnoreCase(t *testing.T) {
	f, err := ParseString("[DummyUsage]\nDummy0001=1\n[1000sub1]\nParameterName=x\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	for _, name := range []string{"dummyusage", "DUMMYUSAGE", "DummyUsage"} {
		s, ok := f.Section(name)
		if !ok {
			t.Errorf("section %q not found", name)
			continue
		}
		if s.Name() != "DummyUsage" {
			t.Errorf("expected name as written, got %q", s.Name())
		}
		for _, key := range []string{"dummy0001", "DUMMY0001", "Dummy0001"} {
			if v, ok := s.Value(key); !ok || v != "1" {
				t.Errorf("key %q: got %q, %v", key, v, ok)
			}
		}
	}

	if _, ok := f.Section("1000SUB1"); !ok {
		t.Error("expected 1000SUB1 to match [1000sub1]")
	}
	if _, ok := f.Section("1000sub2"); ok {
		t.Error("unexpected section 1000sub2")
	}
}

func TestValueKeepsEverythingAfterFirstEquals(t *testing.T) {
	f, err := ParseString("[Comments]\nLine1=a=b;c\n")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	s, _ := f.Section("Comments")
	if v, _ := s.Value("Line1"); v != "a=b;c" {
		t.Errorf("expected a=b;c, got %q", v)
	}
}

func TestParseHandlesCRLFAndBOM(t *testing.T) {
	input := "\xEF\xBB\xBF[FileInfo]\r\nFileName=x.eds\r\n"
	f, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	s, ok := f.Section("FileInfo")
	if !ok {
		t.Fatal("expected FileInfo section")
	}
	if v, _ := s.Value("FileName"); v != "x.eds" {
		t.Errorf("expected x.eds, got %q", v)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		line    int
	}{
		{"value before section", "FileName=x\n[FileInfo]\n", ErrValueOutsideSection, 1},
		{"no equals sign", "[FileInfo]\nFileName\n", ErrInvalidLine, 2},
		{"empty key", "[FileInfo]\n=x\n", ErrInvalidLine, 2},
		{"empty value", "[FileInfo]\nFileName=\n", ErrInvalidLine, 2},
		{"empty section name", "[]\n", ErrInvalidLine, 1},
		{"duplicate section", "[DummyUsage]\nDummy0001=0\n[DummyUsage]\n", ErrDuplicateSection, 3},
		{"duplicate section ignoring case", "[a]\n[A]\n", ErrDuplicateSection, 2},
		{"duplicate key", "[FileInfo]\nFileName=a\nFileName=b\n", ErrDuplicateKey, 3},
		{"duplicate key ignoring case", "[FileInfo]\nFileName=a\nFILENAME=b\n", ErrDuplicateKey, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %T", err)
			}
			if se.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, se.Line)
			}
		})
	}
}

func TestSyntaxErrorMessage(t *testing.T) {
	_, err := ParseString("[FileInfo]\nFileName=a\nFileName=b\n")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "line 3") || !strings.Contains(msg, "FileName") {
		t.Errorf("unexpected message %q", msg)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReadFailure(t *testing.T) {
	_, err := Parse(failingReader{})
	if err == nil {
		t.Fatal("expected error")
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		t.Fatal("read failure must not be a syntax error")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.eds")
	if err := os.WriteFile(path, []byte("[A]\nb=c\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if _, ok := f.Section("a"); !ok {
		t.Error("expected section A")
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.eds")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	f, err := ParseString("[A]\n[B]\n")
	if err != nil {
		t.Fatal(err)
	}
	s := f.Sections()
	s[0] = nil
	if f.Sections()[0] == nil {
		t.Error("Sections must return a copy")
	}
}
