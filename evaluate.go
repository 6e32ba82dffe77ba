package rowhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// Decision is the outcome of evaluating one message against a NeedleSet.
type Decision int

const (
	// Keep means the message payload was replaced with a well-formed
	// binary row.
	Keep Decision = iota
	// Drop means the message is left semantically unchanged: either a
	// filter+action pair asked for it (silent), or a contract violation
	// or format error occurred (logged).
	Drop
)

func (d Decision) String() string {
	if d == Keep {
		return "keep"
	}
	return "drop"
}

// Context is the compiled, immutable state produced by Init: the
// NeedleSet plus whatever ambient configuration (row-size warning
// threshold, metrics sink) was requested. It's safe for concurrent use by
// any number of goroutines calling Handle: Handle never mutates Context,
// it only reads from it and allocates its own per-call scratch state.
type Context struct {
	needles     *NeedleSet
	warnRowSize int64
	metrics     MetricsClient
}

// Free releases the compiled state. Since the NeedleSet and its owned
// strings are ordinary Go values, this doesn't need to walk and free
// anything by hand; it exists to give a Context a well-defined
// "no longer usable" shutdown point.
func (c *Context) Free() {
	c.needles = nil
}

// evalSlot is the per-message, per-needle scratch object the evaluator
// produces while walking the NeedleSet. Length is implicit in len(bytes);
// the NULL sentinel is only materialized when the row is serialized
// (row.go), so here `null` is the source of truth.
type evalSlot struct {
	bytes []byte
	null  bool

	// owns reports whether the type codec allocated bytes fresh (as for
	// timestamp/uuid) versus borrowing a rendering that doesn't need
	// releasing (as for text). Go's GC makes this immaterial for
	// correctness; dispose calls the codec's Dispose for every slot with a
	// needle regardless of this flag, and each codec's Dispose is safe for
	// both cases (see codec.go).
	owns bool

	// publishMeta is set by the store_meta action when this slot resolved
	// to a non-null value; publishMetadata reads it after evaluation.
	publishMeta bool

	needle *Needle
}

func (s *evalSlot) dispose() {
	if s.needle != nil && s.needle.codec != nil {
		s.needle.codec.Dispose(s)
	}
}

// Handle evaluates one message against the compiled NeedleSet:
//
//  1. Verify the null-terminator contract.
//  2. Parse the payload as JSON.
//  3. Walk the NeedleSet in order: resolve, filter, act, format.
//  4. Serialize the row and replace the message payload.
//  5. Release every allocated slot.
//
// On keep, msg's payload has been replaced with a binary row and Handle
// returns (Keep, nil). On drop, msg is left byte-identical to its input
// and Handle returns (Drop, err) where err is nil for a plain filter
// decision, or non-nil for a contract violation / format error, which
// Handle has already logged once.
func (c *Context) Handle(msg Message) (Decision, error) {
	start := time.Now()
	data := msg.Data()
	n := msg.Len()

	if n < 0 || n >= len(data) || data[n] != 0 {
		log.Warn("rowhook: message payload is not null-terminated at declared length")
		c.countDrop("contract_violation")
		return Drop, ErrNotNullTerminated
	}

	tree, err := decodeJSON(data[:n])
	if err != nil {
		log.WithError(err).Warn("rowhook: can't parse message payload as JSON")
		c.countDrop("malformed_json")
		return Drop, ErrMalformedJSON
	}

	slots := make([]evalSlot, len(c.needles.Needles))
	release := func() {
		for i := range slots {
			slots[i].dispose()
		}
	}

	for i, needle := range c.needles.Needles {
		slot := &slots[i]
		slot.needle = needle

		value, resolved := resolvePointer(tree, needle.Pointer)

		filterResult := needle.filter(resolved, value, needle.FilterArg)
		needle.action(filterResult, resolved, value, slot)

		if !needle.keep(filterResult) {
			release()
			c.countDrop("filtered")
			return Drop, nil
		}

		if !resolved {
			slot.null = true
			continue
		}

		if !needle.codec.Format(value, slot) {
			release()
			c.countDrop("format_error")
			return Drop, &FormatError{
				Pointer: needle.Pointer,
				Type:    needle.Type,
				Value:   renderText(value),
				Reason:  "formatter rejected value",
			}
		}
	}

	row := c.serializeRow(slots)
	publishMetadata(msg, c.needles, slots)

	msg.SetData(row)
	msg.SetLen(len(row))

	release()

	if c.metrics != nil {
		c.metrics.DeltaCount("rowhook.processed", 1)
		c.metrics.Duration("rowhook.handle", time.Since(start))
	}

	return Keep, nil
}

func (c *Context) countDrop(reason string) {
	if c.metrics != nil {
		c.metrics.DeltaCountWithTags("rowhook.dropped", 1, []string{"reason:" + reason})
	}
}

// decodeJSON parses a single JSON value, decoding numbers as json.Number
// (never float64) so that the text codec can render "15.12312312312"
// without floating point round-off. Anything but whitespace after that
// value is an error.
func decodeJSON(data []byte) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level JSON value")
	}
	return v, nil
}
