package rowhooktest

import "github.com/AdRoll/rowhook"

var _ rowhook.Message = (*Message)(nil)

// Message is a minimal, in-memory rowhook.Message for tests. NewMessage
// builds one from a JSON payload, appending the trailing NUL Handle
// requires.
type Message struct {
	data []byte
	len  int
	meta rowhook.Metadata
}

// NewMessage returns a Message wrapping payload, null-terminated at its
// own length as the hook's contract requires.
func NewMessage(payload []byte) *Message {
	data := make([]byte, len(payload)+1)
	copy(data, payload)
	return &Message{data: data, len: len(payload)}
}

func (m *Message) Data() []byte { return m.data }
func (m *Message) Len() int     { return m.len }

func (m *Message) SetData(data []byte) { m.data = data }
func (m *Message) SetLen(n int)        { m.len = n }

func (m *Message) Metadata() rowhook.Metadata {
	if m.meta == nil {
		m.meta = rowhook.Metadata{}
	}
	return m.meta
}

// NewPassthroughNeedleSet compiles one needle per pointer, each with the
// default text/store/noop policy: nothing is filtered and every pointer
// becomes a stored column, in argument order. It's the needle-set
// equivalent of a filter that lets everything through untouched, for
// tests that need a NeedleSet to exercise but don't care about its type
// or filter policy.
func NewPassthroughNeedleSet(pointers ...string) (*rowhook.NeedleSet, error) {
	entries := make([]rowhook.NormalizedEntry, len(pointers))
	for i, p := range pointers {
		entries[i] = rowhook.NormalizedEntry{
			Pointer: p,
			Type:    "text",
			Action:  "store",
			Filter:  "noop",
		}
	}
	return rowhook.Compile(entries)
}
