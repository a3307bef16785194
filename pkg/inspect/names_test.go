package inspect

import "testing"

func TestResolveObjectName(t *testing.T) {
	tests := []struct {
		name  string
		index uint16
		ok    bool
	}{
		{"devicetype", 0x1000, true},
		{"DeviceType", 0x1000, true},
		{"device-type", 0x1000, true},
		{"error_register", 0x1001, true},
		{"TPDO1", 0x1800, true},
		{"nonsense", 0, false},
	}
	for _, tt := range tests {
		index, ok := ResolveObjectName(tt.name)
		if ok != tt.ok || index != tt.index {
			t.Errorf("ResolveObjectName(%q) = 0x%04X, %v; want 0x%04X, %v", tt.name, index, ok, tt.index, tt.ok)
		}
	}
}

func TestObjectNamesRoundTrip(t *testing.T) {
	names := ObjectNames()
	if len(names) != len(objectNames) {
		t.Fatalf("ObjectNames() returned %d names, want %d", len(names), len(objectNames))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, n := range names {
		index, _ := ResolveObjectName(n)
		if got := WellKnownName(index); got != n {
			t.Errorf("WellKnownName(0x%04X) = %q, want %q", index, got, n)
		}
	}
	if got := WellKnownName(0x2000); got != "" {
		t.Errorf("WellKnownName(0x2000) = %q, want empty", got)
	}
}

func TestAreaName(t *testing.T) {
	tests := []struct {
		index uint16
		want  string
	}{
		{0x0000, "reserved"},
		{0x0007, "data types"},
		{0x1018, "communication profile"},
		{0x2000, "manufacturer specific"},
		{0x5FFF, "manufacturer specific"},
		{0x6040, "device profile"},
		{0xA000, "interface profile"},
		{0xFFFF, "reserved"},
	}
	for _, tt := range tests {
		if got := AreaName(tt.index); got != tt.want {
			t.Errorf("AreaName(0x%04X) = %q, want %q", tt.index, got, tt.want)
		}
	}
}
