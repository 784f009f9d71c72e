// Package retry re-runs a failing operation with exponential backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrAttemptsExhausted is returned once a bounded policy runs out of attempts
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Policy describes how often and how patiently an operation is retried.
type Policy struct {
	// MaxAttempts bounds the total number of calls. Zero means retry until success or cancellation.
	MaxAttempts int
	// InitialBackoff is the delay after the first failure. Zero retries immediately.
	InitialBackoff time.Duration
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration
	// Multiplier grows the delay after every failure.
	Multiplier float64
}

// DefaultPolicy returns the policy used when nothing is configured.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    5,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	}
}

// Unbounded reports whether the policy retries forever
func (p Policy) Unbounded() bool {
	return p.MaxAttempts <= 0
}

// Do calls fn until it succeeds, the policy gives up, or ctx is done.
// Only the caller's ctx stops the loop early; a deadline fn hits on its own is retried.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	var lastErr error
	backoff := p.InitialBackoff
	attempts := 0

	for attempt := 1; p.Unbounded() || attempt <= p.MaxAttempts; attempt++ {
		attempts = attempt
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		lastErr = err

		if !p.Unbounded() && attempt == p.MaxAttempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			return err
		}
		backoff = p.next(backoff)
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, attempts, lastErr)
}

func (p Policy) next(backoff time.Duration) time.Duration {
	if p.Multiplier > 1 {
		backoff = time.Duration(float64(backoff) * p.Multiplier)
	}
	if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
