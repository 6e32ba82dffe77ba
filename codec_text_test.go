package rowhook

import (
	"encoding/json"
	"testing"
)

func TestRenderText(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"json number", json.Number("15.12312312312"), "15.12312312312"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"array", []interface{}{"a", "b"}, `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderText(tt.value); got != tt.want {
				t.Errorf("renderText(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatText(t *testing.T) {
	var slot evalSlot
	if !formatText(nil, &slot) {
		t.Fatal("formatText(nil) should never fail")
	}
	if !slot.null {
		t.Error("formatText(nil) should mark the slot NULL")
	}

	slot = evalSlot{}
	if !formatText("hello", &slot) {
		t.Fatal("formatText should never fail")
	}
	if slot.null {
		t.Error("formatText(\"hello\") should not mark the slot NULL")
	}
	if string(slot.bytes) != "hello" {
		t.Errorf("slot.bytes = %q, want %q", slot.bytes, "hello")
	}
}
