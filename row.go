package rowhook

import (
	"bytes"
	"encoding/binary"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// nullLength is the 32-bit sentinel written in place of a field's length
// to denote NULL, per the downstream binary COPY protocol's convention.
const nullLength uint32 = 0xFFFFFFFF

// defaultWarnRowSize is used when Config.WarnRowSize is left at zero.
const defaultWarnRowSize = 1 << 20 // 1 MiB

// serializeRow writes the binary row for one evaluated message:
//
//	uint16  fields_count
//	repeat fields_count times, over stored needles in NeedleSet order:
//	    uint32 length        // 0xFFFFFFFF means NULL, no bytes follow
//	    byte[length] payload
//
// fields_count is always c.needles.FieldsCount, the compile-time count,
// never a runtime tally: needles whose action isn't "stored" never
// contribute a field even if their action decided to keep the message.
//
// Growth uses bytes.Buffer's amortized doubling, per the design notes'
// guidance to replace hand-rolled reallocation with a single growable
// vector — the wire format cares about the final bytes, not how the
// buffer grew to hold them.
func (c *Context) serializeRow(slots []evalSlot) []byte {
	var buf bytes.Buffer

	var hdr [2]byte
	binary.BigEndian.PutUint16(hdr[:], uint16(c.needles.FieldsCount))
	buf.Write(hdr[:])

	for i, needle := range c.needles.Needles {
		if !needle.stored {
			continue
		}
		slot := &slots[i]

		var lenbuf [4]byte
		if slot.null {
			binary.BigEndian.PutUint32(lenbuf[:], nullLength)
			buf.Write(lenbuf[:])
			continue
		}

		binary.BigEndian.PutUint32(lenbuf[:], uint32(len(slot.bytes)))
		buf.Write(lenbuf[:])
		buf.Write(slot.bytes)
	}

	warn := c.warnRowSize
	if warn == 0 {
		warn = defaultWarnRowSize
	}
	if int64(buf.Len()) > warn {
		log.WithField("size", humanize.Bytes(uint64(buf.Len()))).
			Warn("rowhook: emitted row exceeds warn_row_size")
	}

	return buf.Bytes()
}
