package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"deckbrief/internal/domain/entity"
)

// fakeSleep records requested delays without waiting.
type fakeSleep struct {
	delays []time.Duration
	err    error
}

func (f *fakeSleep) sleep(_ context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return f.err
}

func transientErr() error {
	return entity.NewSummarizationError("stub", "transient failure", nil)
}

func TestWithBackoff_Success(t *testing.T) {
	fs := &fakeSleep{}
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Second, Sleep: fs.sleep}

	attempts := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
	if len(fs.delays) != 0 {
		t.Errorf("expected no sleeps, got %v", fs.delays)
	}
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	fs := &fakeSleep{}
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Second, Sleep: fs.sleep}

	attempts := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		if attempts < 3 {
			return transientErr()
		}
		return nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithBackoff_ExhaustionAndBackoffSequence(t *testing.T) {
	fs := &fakeSleep{}
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Second, Sleep: fs.sleep}

	attempts := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		return transientErr()
	})

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}

	// Sleeps of 1 and 2 units between attempts, none after the final one.
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	if len(fs.delays) != len(want) {
		t.Fatalf("expected %d sleeps, got %d (%v)", len(want), len(fs.delays), fs.delays)
	}
	for i, d := range want {
		if fs.delays[i] != d {
			t.Errorf("sleep %d: expected %v, got %v", i, d, fs.delays[i])
		}
	}
	if !entity.IsSummarizationError(err) {
		t.Error("expected final error to wrap the SummarizationError")
	}
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	fs := &fakeSleep{}
	cfg := Config{MaxAttempts: 5, BaseDelay: time.Second, Sleep: fs.sleep}

	attempts := 0
	programmingErr := errors.New("nil dereference guard tripped")
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		return programmingErr
	})

	if !errors.Is(err, programmingErr) {
		t.Errorf("expected original error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", attempts)
	}
	if len(fs.delays) != 0 {
		t.Errorf("expected no sleeps, got %v", fs.delays)
	}
}

func TestWithBackoff_SingleAttemptConfigs(t *testing.T) {
	for _, maxAttempts := range []int{0, 1} {
		fs := &fakeSleep{}
		cfg := Config{MaxAttempts: maxAttempts, BaseDelay: time.Second, Sleep: fs.sleep}

		attempts := 0
		err := WithBackoff(context.Background(), cfg, func() error {
			attempts++
			return transientErr()
		})

		if err == nil {
			t.Errorf("MaxAttempts=%d: expected error", maxAttempts)
		}
		if attempts != 1 {
			t.Errorf("MaxAttempts=%d: expected 1 attempt, got %d", maxAttempts, attempts)
		}
		if len(fs.delays) != 0 {
			t.Errorf("MaxAttempts=%d: expected no backoff sleeps, got %v", maxAttempts, fs.delays)
		}
	}
}

func TestWithBackoff_ContextCanceledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{MaxAttempts: 3, BaseDelay: 10 * time.Millisecond}

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		return transientErr()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected retry loop to stop after first attempt, got %d", attempts)
	}
}
