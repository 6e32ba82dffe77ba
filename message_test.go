package rowhook

// fakeMessage is a minimal in-memory Message for tests internal to this
// package. See rowhooktest.Message for the equivalent exported helper
// meant for consumers outside this module.
type fakeMessage struct {
	data []byte
	len  int
	meta Metadata
}

func newFakeMessage(payload []byte) *fakeMessage {
	data := make([]byte, len(payload)+1)
	copy(data, payload)
	return &fakeMessage{data: data, len: len(payload)}
}

func (m *fakeMessage) Data() []byte { return m.data }
func (m *fakeMessage) Len() int     { return m.len }

func (m *fakeMessage) SetData(data []byte) { m.data = data }
func (m *fakeMessage) SetLen(n int)        { m.len = n }

func (m *fakeMessage) Metadata() Metadata {
	if m.meta == nil {
		m.meta = Metadata{}
	}
	return m.meta
}
