package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
)

func TestExecute_PassesThroughResult(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "summary text", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.(string) != "summary text" {
		t.Errorf("expected result passthrough, got %v", result)
	}
}

func TestExecute_PassesThroughError(t *testing.T) {
	cb := New(DefaultConfig("test"))

	wantErr := errors.New("api down")
	_, err := cb.Execute(func() (interface{}, error) {
		return nil, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("expected original error, got %v", err)
	}
}

func TestExecute_TripsAfterFailureThreshold(t *testing.T) {
	cfg := DefaultConfig("test")
	cfg.MinRequests = 3
	cfg.FailureThreshold = 0.6
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, errors.New("boom")
		})
	}

	if cb.State() != gobreaker.StateOpen {
		t.Errorf("expected open state after sustained failures, got %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		return "should not run", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestProviderConfigs(t *testing.T) {
	for _, cfg := range []Config{OpenAIAPIConfig(), ClaudeAPIConfig(), WatsonAPIConfig()} {
		if cfg.Name == "" {
			t.Error("expected breaker name to be set")
		}
		if cfg.FailureThreshold <= 0 || cfg.FailureThreshold > 1 {
			t.Errorf("%s: failure threshold out of range: %v", cfg.Name, cfg.FailureThreshold)
		}
	}
}
