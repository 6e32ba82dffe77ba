package rowhook

// Metadata carries out-of-band data attached to a Message by the input that
// produced it, or by the hook itself (see the store_meta action). Consumers
// access it via Message.Metadata.
//
// This mirrors the shape of a producer's per-message metadata map: a plain
// string-keyed bag, populated directly by whoever holds a reference to it.
type Metadata map[string]interface{}

// MetadataJPointerKey is the metadata key under which store_meta needles
// publish their value (see publishMetadata). Multiple store_meta needles
// collide on this single key; the last one evaluated wins.
const MetadataJPointerKey = "jpointer"

// Message is the external, opaque payload the hook consumes and, on a keep
// decision, replaces in place. Implementations are supplied by the producer
// side of the pipeline; the hook only ever operates through this interface.
//
// The byte buffer returned by Data must be null-terminated at offset Len;
// Handle verifies this invariant before parsing (see ErrNotNullTerminated).
type Message interface {
	// Data returns the current payload bytes. For a message handed to
	// Handle this includes the trailing NUL at offset Len; the binary row
	// Handle installs on keep has no trailing NUL.
	Data() []byte

	// Len returns the length of the payload, excluding the trailing NUL.
	Len() int

	// SetData replaces the payload. The hook calls this only after it has
	// built a complete, well-formed binary row; ownership of the previous
	// buffer returned by Data passes to the hook, which does not retain it.
	SetData(data []byte)

	// SetLen sets the payload length, excluding the trailing NUL, to
	// accompany a SetData call.
	SetLen(n int)

	// Metadata returns the metadata map attached to this message, allocating
	// it on first use. Implementations must return a map that mutations
	// through the returned value persist against, since callers write
	// directly into it (see publishMetadata).
	Metadata() Metadata
}
