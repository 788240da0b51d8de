package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/resilience/circuitbreaker"
	"deckbrief/internal/utils/text"
)

// ClaudeConfig holds the settings for the Claude summarizer.
type ClaudeConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Metrics overrides the Prometheus-backed recorder. Nil selects
	// the default.
	Metrics SummaryMetricsRecorder
}

// Claude implements Provider using Anthropic's messages API.
// A circuit breaker guards the call; retry is owned by the orchestrator.
type Claude struct {
	client          anthropic.Client
	config          ClaudeConfig
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder SummaryMetricsRecorder
}

// NewClaude creates a Claude summarizer from the given configuration.
func NewClaude(cfg ClaudeConfig) *Claude {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}

	return &Claude{
		client:          anthropic.NewClient(opts...),
		config:          cfg,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		metricsRecorder: recorder,
	}
}

// Name implements Provider.
func (c *Claude) Name() string {
	return "claude"
}

// Summarize implements Provider.
func (c *Claude) Summarize(ctx context.Context, noteText string, level int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	result, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return c.doSummarize(ctx, noteText, level)
	})
	if err != nil {
		c.metricsRecorder.RecordFailure(c.Name())
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("claude api circuit breaker open, request rejected",
				slog.String("state", c.circuitBreaker.State().String()))
			return "", entity.NewSummarizationError(c.Name(), "circuit breaker open", err)
		}
		var se *entity.SummarizationError
		if errors.As(err, &se) {
			return "", err
		}
		return "", entity.NewSummarizationError(c.Name(), "api call failed", err)
	}

	return CleanSummary(result.(string)), nil
}

func (c *Claude) doSummarize(ctx context.Context, noteText string, level int) (string, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(truncate(noteText), level)

	slog.DebugContext(ctx, "starting summarization",
		slog.String("provider", c.Name()),
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(noteText)),
		slog.Int("level", level))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})

	duration := time.Since(start)
	c.metricsRecorder.RecordDuration(c.Name(), duration)

	if err != nil {
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", c.Name()),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", entity.NewSummarizationError(c.Name(), "api call failed", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "claude api returned empty content",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", entity.NewSummarizationError(c.Name(), "empty response from api", nil)
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "claude api returned unexpected content type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", entity.NewSummarizationError(c.Name(), "unexpected response content type", nil)
	}

	summary := textBlock.Text
	c.metricsRecorder.RecordLength(c.Name(), text.CountRunes(summary))

	slog.DebugContext(ctx, "summarization completed",
		slog.String("provider", c.Name()),
		slog.String("request_id", requestID),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
