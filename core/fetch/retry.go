// ABOUTME: Bounded retry engine with exponential backoff and a hard delay cap
// ABOUTME: Exhaustion is returned as a typed error value, never propagated as a panic

package fetch

import (
	"context"
	"errors"
	"time"

	coreerrors "vodsearch-api/core/errors"
	"vodsearch-api/core/interfaces"
)

// RetryConfig controls the retry schedule.
type RetryConfig struct {
	// MaxAttempts is the total number of tries, first attempt included.
	MaxAttempts int

	// InitialDelay is the wait before the first retry; each further retry
	// doubles it.
	InitialDelay time.Duration

	// MaxDelay caps any single wait.
	MaxDelay time.Duration
}

// DefaultRetryConfig matches the upstream tolerance observed in practice:
// six tries, 1.5s initial backoff, 15s cap.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:  6,
	InitialDelay: 1500 * time.Millisecond,
	MaxDelay:     15 * time.Second,
}

// Delay returns the backoff before retrying after the given zero-based
// attempt: min(InitialDelay * 2^attempt, MaxDelay).
func (c RetryConfig) Delay(attempt int) time.Duration {
	d := c.InitialDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= c.MaxDelay {
			return c.MaxDelay
		}
	}
	if d > c.MaxDelay {
		return c.MaxDelay
	}
	return d
}

// permanentError marks a failure as non-retryable.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the retrier gives up immediately. Used for parse
// failures and application-level error codes, which retrying would only
// reproduce.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked non-retryable.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Retrier runs an operation under a bounded retry schedule. The sleep
// function is injectable for tests; the default waits on a timer while
// honoring context cancellation.
type Retrier struct {
	cfg    RetryConfig
	logger interfaces.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewRetrier creates a retrier with the given schedule.
func NewRetrier(cfg RetryConfig, logger interfaces.Logger) *Retrier {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Retrier{
		cfg:    cfg,
		logger: logger,
		sleep: func(ctx context.Context, d time.Duration) error {
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-t.C:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

// Do runs fn until it succeeds, returns a permanent error, the context
// ends, or the attempts are exhausted. Exhaustion yields a
// *coreerrors.RetryExhaustedError carrying the last failure.
func (r *Retrier) Do(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return &coreerrors.RetryExhaustedError{Attempts: attempt, LastErr: lastErr}
			}
			return err
		}

		err := fn()
		if err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		lastErr = err

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}
		wait := r.cfg.Delay(attempt)
		if r.logger != nil {
			r.logger.Debug("retrying upstream call", map[string]interface{}{
				"op":      op,
				"attempt": attempt + 1,
				"wait_ms": wait.Milliseconds(),
				"error":   err.Error(),
			})
		}
		if serr := r.sleep(ctx, wait); serr != nil {
			return &coreerrors.RetryExhaustedError{Attempts: attempt + 1, LastErr: lastErr}
		}
	}
	return &coreerrors.RetryExhaustedError{Attempts: r.cfg.MaxAttempts, LastErr: lastErr}
}
