// Package circuitbreaker wraps github.com/sony/gobreaker to protect the
// summarization provider APIs from sustained failure storms.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the breaker in logs
	Name string

	// MaxRequests is the number of probe requests allowed in half-open state
	MaxRequests uint32

	// Interval is the cyclic period for clearing counts in closed state
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing again
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the circuit
	FailureThreshold float64

	// MinRequests is the minimum sample size before the ratio applies
	MinRequests uint32
}

// DefaultConfig returns a default breaker configuration.
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// OpenAIAPIConfig returns the breaker configuration for OpenAI calls.
func OpenAIAPIConfig() Config {
	return DefaultConfig("openai-api")
}

// ClaudeAPIConfig returns the breaker configuration for Claude calls.
func ClaudeAPIConfig() Config {
	return DefaultConfig("claude-api")
}

// WatsonAPIConfig returns the breaker configuration for Watson NLU calls.
// Watson quota limits are tighter, so the breaker probes less eagerly.
func WatsonAPIConfig() Config {
	cfg := DefaultConfig("watson-api")
	cfg.MaxRequests = 1
	return cfg
}

// CircuitBreaker wraps gobreaker.CircuitBreaker with state-change logging.
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a circuit breaker from the given configuration.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn through the breaker.
// Returns gobreaker.ErrOpenState when the circuit is open.
func (c *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return c.cb.Execute(fn)
}

// State returns the current breaker state.
func (c *CircuitBreaker) State() gobreaker.State {
	return c.cb.State()
}
