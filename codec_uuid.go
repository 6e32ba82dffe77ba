package rowhook

import "github.com/google/uuid"

// uuidNamespace scopes the deterministic UUIDs this codec produces so they
// never collide with UUIDs derived from an unrelated namespace by another
// system reusing the same source values.
var uuidNamespace = uuid.MustParse("6f1b3b1a-2f0e-4b7d-8c3a-9b7a6e1d4c2f")

func init() {
	registerType(&typeCodec{
		Tag:     "uuid",
		Format:  formatUUID,
		Dispose: func(slot *evalSlot) { slot.bytes = nil },
	})
}

// formatUUID extends the type registry beyond the {text, timestamp} pair
// (the registry is designed to grow). It derives a deterministic RFC 4122
// v5 UUID from the string
// rendering of the located value and writes its 16 raw bytes into a
// freshly allocated, owned slot buffer.
//
// Determinism (not randomness) is the point: reprocessing the same
// message must yield the same surrogate key, so this is UUIDv5 (SHA-1 of
// namespace+name), never UUIDv4. A needle using this type is typically
// paired with a natural-key field the caller doesn't want to store
// verbatim as the row's key column.
func formatUUID(value interface{}, slot *evalSlot) bool {
	if value == nil {
		slot.null = true
		return true
	}
	id := uuid.NewSHA1(uuidNamespace, []byte(renderText(value)))
	buf := make([]byte, 16)
	copy(buf, id[:])
	slot.bytes = buf
	slot.owns = true
	return true
}
