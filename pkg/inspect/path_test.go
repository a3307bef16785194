package inspect

import (
	"errors"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *Path
		wantErr bool
	}{
		{
			name:  "hex with prefix",
			input: "0x1018",
			want:  &Path{Index: 0x1018},
		},
		{
			name:  "hex without prefix",
			input: "1018",
			want:  &Path{Index: 0x1018},
		},
		{
			name:  "dotted subindex",
			input: "0x1018.2",
			want:  &Path{Index: 0x1018, Subindex: 2, HasSubindex: true},
		},
		{
			name:  "dotted subindex is hex",
			input: "1800.0A",
			want:  &Path{Index: 0x1800, Subindex: 0x0A, HasSubindex: true},
		},
		{
			name:  "section spelling",
			input: "1018sub2",
			want:  &Path{Index: 0x1018, Subindex: 2, HasSubindex: true},
		},
		{
			name:  "section spelling upper case",
			input: "1018SUB0",
			want:  &Path{Index: 0x1018, Subindex: 0, HasSubindex: true},
		},
		{
			name:  "well-known name",
			input: "identity",
			want:  &Path{Index: 0x1018},
		},
		{
			name:  "well-known name with subindex",
			input: "Identity.1",
			want:  &Path{Index: 0x1018, Subindex: 1, HasSubindex: true},
		},
		{
			name:  "surrounding space",
			input: "  0x2000 ",
			want:  &Path{Index: 0x2000},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "empty subindex",
			input:   "0x1018.",
			wantErr: true,
		},
		{
			name:    "empty index",
			input:   ".2",
			wantErr: true,
		},
		{
			name:    "index too large",
			input:   "0x10000",
			wantErr: true,
		},
		{
			name:    "subindex too large",
			input:   "1018.100",
			wantErr: true,
		},
		{
			name:    "unknown name",
			input:   "flux",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePath(%q) expected error, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q) unexpected error: %v", tt.input, err)
			}
			if got.Index != tt.want.Index || got.Subindex != tt.want.Subindex || got.HasSubindex != tt.want.HasSubindex {
				t.Errorf("ParsePath(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	if _, err := ParsePath(" "); !errors.Is(err, ErrEmptyPath) {
		t.Errorf("blank path: got %v, want ErrEmptyPath", err)
	}
	if _, err := ParsePath("1018."); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("trailing dot: got %v, want ErrInvalidPath", err)
	}
	if _, err := ParsePath("zz"); !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("bad index: got %v, want ErrInvalidNumber", err)
	}
}

func TestPathString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1018", "0x1018"},
		{"1018sub2", "0x1018.02"},
		{"heartbeat", "0x1017"},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.input)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", tt.input, err)
		}
		if got := p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		if p.Raw != tt.input {
			t.Errorf("Raw = %q, want %q", p.Raw, tt.input)
		}
	}
}
