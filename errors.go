package rowhook

import "fmt"

// ConfigError reports a configuration-time failure: an unknown enum value,
// a missing pointer, a missing required filter argument, or a malformed
// jpointers entry shape, or a TOML document that does not decode. It is
// fatal to startup and is returned from LoadConfig, Validate, Compile and
// Init.
type ConfigError struct {
	Entry int    // index of the offending jpointers entry, or -1 if not entry-specific
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Entry < 0 {
		return fmt.Sprintf("rowhook: config: %s", e.Msg)
	}
	return fmt.Sprintf("rowhook: config: jpointers[%d]: %s", e.Entry, e.Msg)
}

// FormatError reports that a type formatter rejected the value located at
// a needle's pointer (malformed or out-of-range timestamp, for instance).
// It is a per-message error: the message is dropped, the pipeline keeps
// running.
type FormatError struct {
	Pointer string
	Type    string
	Value   string
	Reason  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("rowhook: format: pointer %q (type %s): %q: %s", e.Pointer, e.Type, e.Value, e.Reason)
}

// Contract violations: the producer promised a null-terminated buffer and
// valid JSON, and did not.
var (
	// ErrNotNullTerminated is returned by Handle when Message.Data()[Message.Len()]
	// is not the zero byte.
	ErrNotNullTerminated = fmt.Errorf("rowhook: payload not null-terminated at declared length")

	// ErrMalformedJSON is returned by Handle when the payload does not
	// parse as a single JSON value.
	ErrMalformedJSON = fmt.Errorf("rowhook: payload is not valid JSON")
)
