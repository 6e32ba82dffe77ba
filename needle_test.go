package rowhook

import "testing"

func TestCompile(t *testing.T) {
	entries := []NormalizedEntry{
		{Pointer: "/a", Type: "text", Action: "store", Filter: "noop"},
		{Pointer: "/b", Type: "timestamp", Action: "discard_false", Filter: "exists"},
		{Pointer: "/c", Type: "text", Action: "store_meta", Filter: "match", Data: "x"},
	}

	ns, err := Compile(entries)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(ns.Needles) != 3 {
		t.Fatalf("got %d needles, want 3", len(ns.Needles))
	}
	// /b's action (discard_false) doesn't store; the other two do.
	if ns.FieldsCount != 2 {
		t.Errorf("FieldsCount = %d, want 2", ns.FieldsCount)
	}
	if ns.Needles[1].Stored() {
		t.Error("discard_false needle should not be Stored()")
	}
	if ns.Needles[2].FilterArg != "x" {
		t.Errorf("FilterArg = %q, want %q", ns.Needles[2].FilterArg, "x")
	}
}

func TestCompileRejectsUnknownEnums(t *testing.T) {
	tests := []struct {
		name  string
		entry NormalizedEntry
	}{
		{"empty pointer", NormalizedEntry{Type: "text", Action: "store", Filter: "noop"}},
		{"unknown type", NormalizedEntry{Pointer: "/a", Type: "bogus", Action: "store", Filter: "noop"}},
		{"unknown action", NormalizedEntry{Pointer: "/a", Type: "text", Action: "bogus", Filter: "noop"}},
		{"unknown filter", NormalizedEntry{Pointer: "/a", Type: "text", Action: "store", Filter: "bogus"}},
		{"match without data", NormalizedEntry{Pointer: "/a", Type: "text", Action: "store", Filter: "match"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile([]NormalizedEntry{tt.entry})
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			cerr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if cerr.Entry != 0 {
				t.Errorf("Entry = %d, want 0", cerr.Entry)
			}
		})
	}
}
