package rowhook

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

// BatchWriter accumulates serialized rows and flushes them, gzip-compressed,
// to an underlying io.Writer once enough have accumulated. It's an optional
// convenience for callers that hand rows off to a downstream transport in
// batches rather than one at a time; Handle itself never buffers.
type BatchWriter struct {
	dst     io.Writer
	maxRows int
	buf     bytes.Buffer
	rows    int
}

// NewBatchWriter returns a BatchWriter that flushes to dst after maxRows
// rows have been written. A maxRows of zero or less means "flush only on
// an explicit Flush call".
func NewBatchWriter(dst io.Writer, maxRows int) *BatchWriter {
	return &BatchWriter{dst: dst, maxRows: maxRows}
}

// WriteRow appends one already-serialized row (the output of
// Context.serializeRow) to the batch, flushing automatically once maxRows
// is reached.
func (w *BatchWriter) WriteRow(row []byte) error {
	w.buf.Write(row)
	w.rows++
	if w.maxRows > 0 && w.rows >= w.maxRows {
		return w.Flush()
	}
	return nil
}

// Flush gzips the accumulated rows and writes them to dst as a single
// member, then resets the batch. It's a no-op if no rows are pending.
func (w *BatchWriter) Flush() error {
	if w.rows == 0 {
		return nil
	}

	gz := gzip.NewWriter(w.dst)
	if _, err := gz.Write(w.buf.Bytes()); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}

	w.buf.Reset()
	w.rows = 0
	return nil
}
