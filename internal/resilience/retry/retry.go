// Package retry provides bounded retry with exponential backoff for
// summarization calls. Only transient provider failures, expressed as
// entity.SummarizationError, are retried; any other error indicates a
// defect and propagates immediately.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"deckbrief/internal/domain/entity"
)

// SleepFunc waits for the given backoff delay or until the context is
// done. It is injectable so tests can substitute a recording fake
// instead of incurring wall-clock sleeps.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the total number of attempts. Values of 0 or 1
	// both mean a single attempt with no backoff sleep.
	MaxAttempts int

	// BaseDelay is the backoff unit. The sleep before retry n (0-based)
	// is BaseDelay * 2^n: 1, 2, 4, 8, ... units.
	BaseDelay time.Duration

	// Sleep performs the backoff wait. Nil selects the default
	// context-aware time.After wait.
	Sleep SleepFunc
}

// DefaultConfig returns the retry configuration used for provider calls.
func DefaultConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts: maxAttempts,
		BaseDelay:   time.Second,
	}
}

// WithBackoff executes fn up to cfg.MaxAttempts times.
// On a SummarizationError it sleeps BaseDelay * 2^attempt and retries
// unless the attempt was the last; other errors return immediately.
// There is never a sleep after the final attempt.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = waitFor
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			if attempt > 0 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt+1))
			}
			return nil
		}

		if !entity.IsSummarizationError(lastErr) {
			slog.Warn("non-retryable error, aborting",
				slog.Int("attempt", attempt+1),
				slog.Any("error", lastErr))
			return lastErr
		}

		if attempt == attempts-1 {
			break
		}

		delay := cfg.BaseDelay << uint(attempt)
		slog.Warn("operation failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", attempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		if err := sleep(ctx, delay); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, lastErr)
}

func waitFor(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
