// Package retry implements a bounded retry loop for optimistic-concurrency
// writes. A versioned aggregate is read, mutated, and conditionally written;
// when the conditional write loses the race the whole read-mutate-write cycle
// is repeated up to a fixed bound. Exhausting the bound is surfaced as an
// explicit error rather than being swallowed, so callers always learn about
// sustained contention.
package retry

import (
	"context"
	"errors"

	"storefront/internal/pkg/errs"
)

// DefaultMaxAttempts bounds the optimistic retry cycle. Three attempts match
// the contention tolerance of the stock ledger under checkout load.
const DefaultMaxAttempts = 3

var (
	// ErrVersionConflict must be returned (or wrapped) by the operation when
	// its conditional write observed a stale version. Any other error aborts
	// the loop immediately.
	ErrVersionConflict = errors.New("aggregate version conflict")

	// ErrAttemptsExhausted reports that the operation kept losing the version
	// race until the attempt bound ran out.
	ErrAttemptsExhausted = errors.New("optimistic retry attempts exhausted")
)

// Optimistic runs op up to maxAttempts times, repeating only while op reports
// ErrVersionConflict. A non-positive maxAttempts falls back to
// DefaultMaxAttempts. Context cancellation is checked between attempts.
func Optimistic(ctx context.Context, maxAttempts int, op func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, ErrVersionConflict) {
			return lastErr
		}
	}

	return errors.Join(ErrAttemptsExhausted, errs.NewVersionIsInvalidError("optimistic write", lastErr))
}
