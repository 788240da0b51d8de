package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/resilience/circuitbreaker"
	"deckbrief/internal/utils/text"
)

const openaiSystemPrompt = "You are a helpful assistant, skilled in summarizing " +
	"complex documents into simple bullet points."

// OpenAIConfig holds the settings for the OpenAI summarizer.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration

	// BaseURL overrides the API endpoint. Used by tests.
	BaseURL string

	// Metrics overrides the Prometheus-backed recorder. Nil selects
	// the default.
	Metrics SummaryMetricsRecorder
}

// OpenAI implements Provider using OpenAI's chat completions API.
// A circuit breaker guards the call; retry is owned by the orchestrator.
type OpenAI struct {
	client          *openai.Client
	config          OpenAIConfig
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder SummaryMetricsRecorder
}

// NewOpenAI creates an OpenAI summarizer from the given configuration.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	recorder := cfg.Metrics
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}

	return &OpenAI{
		client:          openai.NewClientWithConfig(clientCfg),
		config:          cfg,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		metricsRecorder: recorder,
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string {
	return "openai"
}

// Summarize implements Provider.
func (o *OpenAI) Summarize(ctx context.Context, noteText string, level int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	result, err := o.circuitBreaker.Execute(func() (interface{}, error) {
		return o.doSummarize(ctx, noteText, level)
	})
	if err != nil {
		o.metricsRecorder.RecordFailure(o.Name())
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("openai api circuit breaker open, request rejected",
				slog.String("state", o.circuitBreaker.State().String()))
			return "", entity.NewSummarizationError(o.Name(), "circuit breaker open", err)
		}
		var se *entity.SummarizationError
		if errors.As(err, &se) {
			return "", err
		}
		return "", entity.NewSummarizationError(o.Name(), "api call failed", err)
	}

	return CleanSummary(result.(string)), nil
}

func (o *OpenAI) doSummarize(ctx context.Context, noteText string, level int) (string, error) {
	requestID := uuid.New().String()
	prompt := buildPrompt(truncate(noteText), level)

	slog.DebugContext(ctx, "starting summarization",
		slog.String("provider", o.Name()),
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(noteText)),
		slog.Int("level", level))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: float32(o.config.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})

	duration := time.Since(start)
	o.metricsRecorder.RecordDuration(o.Name(), duration)

	if err != nil {
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", o.Name()),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", entity.NewSummarizationError(o.Name(), "api call failed", err)
	}

	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "openai api returned no choices",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", entity.NewSummarizationError(o.Name(), "empty response from api", nil)
	}

	summary := resp.Choices[0].Message.Content
	o.metricsRecorder.RecordLength(o.Name(), text.CountRunes(summary))

	slog.DebugContext(ctx, "summarization completed",
		slog.String("provider", o.Name()),
		slog.String("request_id", requestID),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
