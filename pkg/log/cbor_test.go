package log

import (
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestEventUsesIntegerKeys(t *testing.T) {
	data, err := EncodeEvent(Event{
		Timestamp: time.Date(2026, 3, 4, 5, 6, 7, 8, time.UTC),
		LoadID:    "id",
		Stage:     StageAssemble,
		Category:  CategoryList,
		List:      &ListEvent{Name: "MandatoryObjects", Declared: 3, Resolved: 3},
	})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}

	var raw map[any]any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		t.Fatalf("cbor.Unmarshal failed: %v", err)
	}
	for k := range raw {
		if _, ok := k.(uint64); !ok {
			t.Errorf("expected integer key, got %T %v", k, k)
		}
	}
	if _, ok := raw[uint64(12)]; !ok {
		t.Error("expected List payload under key 12")
	}
	if _, ok := raw[uint64(11)]; ok {
		t.Error("nil Object payload should be omitted")
	}
}

func TestDecodePreservesNanoseconds(t *testing.T) {
	ts := time.Date(2026, 3, 4, 5, 6, 7, 123456789, time.UTC)
	data, err := EncodeEvent(Event{Timestamp: ts, LoadID: "id"})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	ev, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if !ev.Timestamp.Equal(ts) {
		t.Errorf("timestamp: got %v, want %v", ev.Timestamp, ts)
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error decoding garbage")
	}
}
