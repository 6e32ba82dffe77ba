package rowhook

import "encoding/json"

func init() {
	registerType(&typeCodec{
		Tag:     "text",
		Format:  formatText,
		Dispose: func(slot *evalSlot) {}, // borrowed from the JSON tree; nothing to release
	})
}

// formatText renders any JSON scalar or structural value to its UTF-8
// string rendering and writes it into slot as a borrowed value: owns
// stays false and Dispose stays a no-op, matching the timestamp and uuid
// codecs' convention of only allocating a fresh buffer when they actually
// need one.
//
// A JSON null renders as NULL, not the four-byte string "null": since a
// present-but-empty field and an absent field are observably different
// downstream (one row-length is 0, the other 0xFFFFFFFF), collapsing null
// into an empty string would erase that distinction. See DESIGN.md OQ-1.
func formatText(value interface{}, slot *evalSlot) bool {
	if value == nil {
		slot.null = true
		return true
	}
	slot.bytes = []byte(renderText(value))
	return true
}

// renderText is the shared "coerce any JSON value to its string form"
// used by both the text codec and the match/substr filters.
func renderText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case json.Number:
		return string(v)
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
