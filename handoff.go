package rowhook

import (
	"context"
	"time"

	"github.com/jpillora/backoff"
)

// defaultFlushBackoff is an exponential backoff counter with jitter, used
// by RetryFlush when a downstream sink transiently rejects a batch.
var defaultFlushBackoff = backoff.Backoff{
	Min:    100 * time.Millisecond,
	Max:    10 * time.Second,
	Factor: 2,
	Jitter: true,
}

// RetryFlush calls flush until it succeeds, ctx is done, or attempts is
// exhausted (a non-positive attempts means unlimited). It exists for
// callers driving a BatchWriter against a sink that can reject a batch
// transiently, e.g. because of throttling.
func RetryFlush(ctx context.Context, attempts int, flush func() error) error {
	b := defaultFlushBackoff
	b.Reset()

	var err error
	for i := 0; attempts <= 0 || i < attempts; i++ {
		if err = flush(); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	return err
}
