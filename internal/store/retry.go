package store

import (
	"context"
	"time"

	"github.com/MKhiriev/notes-keeper/internal/logger"
)

// readRetryDelays are the pauses between attempts of an idempotent read
// that failed with a retryable error.
var readRetryDelays = []time.Duration{
	50 * time.Millisecond,
	200 * time.Millisecond,
}

// retryRead runs op and repeats it while the classifier reports the error as
// retryable. Only reads go through here; mutations are never repeated.
func (db *DB) retryRead(ctx context.Context, op func() error) error {
	err := op()
	for _, delay := range readRetryDelays {
		if err == nil || db.errorClassificator.Classify(err) != Retryable {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Dur("delay", delay).Msg("retrying read after retryable error")

		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
		}

		err = op()
	}
	return err
}
