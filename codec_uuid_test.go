package rowhook

import "testing"

func TestFormatUUID(t *testing.T) {
	var slot evalSlot
	if !formatUUID(nil, &slot) {
		t.Fatal("formatUUID(nil) should never fail")
	}
	if !slot.null {
		t.Error("formatUUID(nil) should mark the slot NULL")
	}

	slot = evalSlot{}
	if !formatUUID("user-123", &slot) {
		t.Fatal("formatUUID should succeed on a string value")
	}
	if len(slot.bytes) != 16 {
		t.Fatalf("slot.bytes has length %d, want 16", len(slot.bytes))
	}
	if !slot.owns {
		t.Error("uuid codec should own its buffer")
	}

	var again evalSlot
	formatUUID("user-123", &again)
	for i := range slot.bytes {
		if slot.bytes[i] != again.bytes[i] {
			t.Fatal("formatUUID should be deterministic for the same input")
		}
	}

	var other evalSlot
	formatUUID("user-124", &other)
	same := true
	for i := range slot.bytes {
		if slot.bytes[i] != other.bytes[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("formatUUID should produce distinct ids for distinct inputs")
	}
}
