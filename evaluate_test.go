package rowhook

import (
	"bytes"
	"sync"
	"testing"
)

func mustContext(t *testing.T, entries []NormalizedEntry) *Context {
	t.Helper()
	ns, err := Compile(entries)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return &Context{needles: ns}
}

// scenario 1: timestamp minimum.
func TestHandleTimestampMinimum(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/t", Type: "timestamp", Action: "store", Filter: "noop"},
	})
	msg := newFakeMessage([]byte(`{"t":"2000-01-01T00:00:00Z"}`))

	dec, err := c.Handle(msg)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if dec != Keep {
		t.Fatalf("decision = %v, want Keep", dec)
	}

	want := []byte{
		0x00, 0x01,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(msg.Data()[:msg.Len()], want) {
		t.Errorf("row = % x, want % x", msg.Data()[:msg.Len()], want)
	}
}

// scenario 4: out-of-range timestamp drops the message unchanged.
func TestHandleTimestampOutOfRange(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/t", Type: "timestamp", Action: "store", Filter: "noop"},
	})
	payload := []byte(`{"t":"1999-12-31T23:59:59Z"}`)
	msg := newFakeMessage(payload)

	dec, err := c.Handle(msg)
	if dec != Drop {
		t.Fatalf("decision = %v, want Drop", dec)
	}
	if err == nil {
		t.Fatal("expected a FormatError, got nil")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Fatalf("error type = %T, want *FormatError", err)
	}
	if !bytes.Equal(msg.Data(), append(append([]byte{}, payload...), 0)) {
		t.Error("dropped message's payload must be left unchanged")
	}
}

// scenario 5: filter match + discard_false.
func TestHandleFilterMatchDiscardFalse(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/k", Type: "text", Action: "discard_false", Filter: "match", Data: "yes"},
	})

	msg := newFakeMessage([]byte(`{"k":"no"}`))
	if dec, _ := c.Handle(msg); dec != Drop {
		t.Errorf("k=no: decision = %v, want Drop", dec)
	}

	msg = newFakeMessage([]byte(`{"k":"yes"}`))
	dec, err := c.Handle(msg)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if dec != Keep {
		t.Fatalf("k=yes: decision = %v, want Keep", dec)
	}
	want := []byte{0x00, 0x01, 0x00, 0x00, 0x00, 0x03, 'y', 'e', 's'}
	if !bytes.Equal(msg.Data()[:msg.Len()], want) {
		t.Errorf("row = % x, want % x", msg.Data()[:msg.Len()], want)
	}
}

// scenario 6: missing pointer among two stored needles.
func TestHandleMissingPointer(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/a", Type: "text", Action: "store", Filter: "noop"},
		{Pointer: "/b", Type: "text", Action: "store", Filter: "noop"},
	})
	msg := newFakeMessage([]byte(`{"a":"x"}`))

	dec, err := c.Handle(msg)
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if dec != Keep {
		t.Fatalf("decision = %v, want Keep", dec)
	}

	want := []byte{
		0x00, 0x02,
		0x00, 0x00, 0x00, 0x01, 'x',
		0xFF, 0xFF, 0xFF, 0xFF,
	}
	if !bytes.Equal(msg.Data()[:msg.Len()], want) {
		t.Errorf("row = % x, want % x", msg.Data()[:msg.Len()], want)
	}
}

func TestHandleNotNullTerminated(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/a", Type: "text", Action: "store", Filter: "noop"},
	})
	msg := &fakeMessage{data: []byte(`{"a":"x"}`), len: 9} // no trailing NUL

	dec, err := c.Handle(msg)
	if dec != Drop || err != ErrNotNullTerminated {
		t.Fatalf("got (%v, %v), want (Drop, ErrNotNullTerminated)", dec, err)
	}
}

func TestHandleMalformedJSON(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/a", Type: "text", Action: "store", Filter: "noop"},
	})
	msg := newFakeMessage([]byte(`{not json`))

	dec, err := c.Handle(msg)
	if dec != Drop || err != ErrMalformedJSON {
		t.Fatalf("got (%v, %v), want (Drop, ErrMalformedJSON)", dec, err)
	}
}

func TestHandlePublishesMetadata(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/id", Type: "text", Action: "store_meta", Filter: "noop"},
	})
	msg := newFakeMessage([]byte(`{"id":"abc123"}`))

	if _, err := c.Handle(msg); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	got, ok := msg.Metadata()[MetadataJPointerKey]
	if !ok {
		t.Fatal("expected metadata to be published")
	}
	if got != "abc123" {
		t.Errorf("metadata[%q] = %v, want %q", MetadataJPointerKey, got, "abc123")
	}
}

// TestHandleConcurrent verifies Handle is safe to call concurrently
// against one shared Context, since it must never mutate the compiled
// NeedleSet.
func TestHandleConcurrent(t *testing.T) {
	c := mustContext(t, []NormalizedEntry{
		{Pointer: "/a", Type: "text", Action: "store", Filter: "noop"},
		{Pointer: "/t", Type: "timestamp", Action: "store", Filter: "noop"},
	})

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			msg := newFakeMessage([]byte(`{"a":"x","t":"2000-01-01T00:00:00Z"}`))
			if dec, err := c.Handle(msg); dec != Keep || err != nil {
				t.Errorf("Handle: dec=%v err=%v", dec, err)
			}
		}()
	}
	wg.Wait()
}
