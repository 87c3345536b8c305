package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	coreerrors "vodsearch-api/core/errors"
)

func TestDelay_DoublesPerAttempt(t *testing.T) {
	cfg := DefaultRetryConfig

	expected := []time.Duration{
		1500 * time.Millisecond,
		3 * time.Second,
		6 * time.Second,
		12 * time.Second,
		15 * time.Second, // capped, would be 24s
	}
	for attempt, want := range expected {
		if got := cfg.Delay(attempt); got != want {
			t.Errorf("Delay(%d) = %v, want %v", attempt, got, want)
		}
	}
}

func TestDelay_TotalWaitBudget(t *testing.T) {
	cfg := DefaultRetryConfig

	var total time.Duration
	for attempt := 0; attempt < cfg.MaxAttempts-1; attempt++ {
		total += cfg.Delay(attempt)
	}

	if total != 37500*time.Millisecond {
		t.Errorf("total wait across retries = %v, want 37.5s", total)
	}
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	r := instantSleep(NewRetrier(noRetry, nil))

	calls := 0
	err := r.Do(context.Background(), "op", func() error {
		calls++
		return nil
	})

	if err != nil {
		t.Errorf("Do returned error: %v", err)
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	r := instantSleep(NewRetrier(noRetry, nil))

	calls := 0
	err := r.Do(context.Background(), "op", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Errorf("Do returned error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestDo_ExhaustionReturnsTypedError(t *testing.T) {
	r := instantSleep(NewRetrier(noRetry, nil))

	last := errors.New("still failing")
	calls := 0
	err := r.Do(context.Background(), "op", func() error {
		calls++
		return last
	})

	if calls != noRetry.MaxAttempts {
		t.Errorf("fn called %d times, want %d", calls, noRetry.MaxAttempts)
	}
	var exhausted *coreerrors.RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Do returned %T, want *RetryExhaustedError", err)
	}
	if exhausted.Attempts != noRetry.MaxAttempts {
		t.Errorf("Attempts = %d, want %d", exhausted.Attempts, noRetry.MaxAttempts)
	}
	if !errors.Is(err, last) {
		t.Error("exhaustion error does not wrap the last failure")
	}
}

func TestDo_PermanentErrorShortCircuits(t *testing.T) {
	r := instantSleep(NewRetrier(noRetry, nil))

	terminal := errors.New("bad payload")
	calls := 0
	err := r.Do(context.Background(), "op", func() error {
		calls++
		return Permanent(terminal)
	})

	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	if err != terminal {
		t.Errorf("Do returned %v, want the unwrapped terminal error", err)
	}
}

func TestDo_ContextCancelStopsRetrying(t *testing.T) {
	r := NewRetrier(RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour, MaxDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		// Cancel while the retrier sleeps after the first failure.
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := r.Do(ctx, "op", func() error {
		calls++
		return errors.New("transient")
	})

	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
	var exhausted *coreerrors.RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Errorf("Do returned %T, want *RetryExhaustedError", err)
	}
}

func TestIsPermanent(t *testing.T) {
	if IsPermanent(errors.New("plain")) {
		t.Error("plain error reported as permanent")
	}
	if !IsPermanent(Permanent(errors.New("wrapped"))) {
		t.Error("wrapped error not reported as permanent")
	}
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
