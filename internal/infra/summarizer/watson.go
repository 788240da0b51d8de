package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/resilience/circuitbreaker"
	"deckbrief/internal/utils/text"
)

// watsonAPIVersion is the NLU API version date sent with every request.
const watsonAPIVersion = "2022-04-07"

// WatsonConfig holds the settings for the Watson NLU summarizer.
type WatsonConfig struct {
	APIKey     string
	ServiceURL string
	Timeout    time.Duration

	// Metrics overrides the Prometheus-backed recorder. Nil selects
	// the default.
	Metrics SummaryMetricsRecorder
}

// Watson implements Provider using IBM Watson Natural Language
// Understanding over its REST API. Unlike the chat providers, Watson
// takes the bullet count as a native summarization-length parameter and
// returns a prose paragraph, which is split into one bullet per
// sentence before the shared clean-up.
type Watson struct {
	config          WatsonConfig
	httpClient      *http.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	metricsRecorder SummaryMetricsRecorder
}

// NewWatson creates a Watson summarizer from the given configuration.
func NewWatson(cfg WatsonConfig) *Watson {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}

	return &Watson{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker:  circuitbreaker.New(circuitbreaker.WatsonAPIConfig()),
		metricsRecorder: recorder,
	}
}

// Name implements Provider.
func (w *Watson) Name() string {
	return "watson"
}

// watsonAnalyzeRequest is the JSON payload for the /v1/analyze endpoint.
type watsonAnalyzeRequest struct {
	Text     string         `json:"text"`
	Features watsonFeatures `json:"features"`
}

type watsonFeatures struct {
	Summarization watsonSummarizationOptions `json:"summarization"`
}

type watsonSummarizationOptions struct {
	Limit int `json:"limit"`
}

// watsonAnalyzeResponse is the subset of the analyze response we consume.
type watsonAnalyzeResponse struct {
	Summarization *struct {
		Text string `json:"text"`
	} `json:"summarization"`
}

// Summarize implements Provider.
func (w *Watson) Summarize(ctx context.Context, noteText string, level int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	result, err := w.circuitBreaker.Execute(func() (interface{}, error) {
		return w.doSummarize(ctx, noteText, level)
	})
	if err != nil {
		w.metricsRecorder.RecordFailure(w.Name())
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("watson api circuit breaker open, request rejected",
				slog.String("state", w.circuitBreaker.State().String()))
			return "", entity.NewSummarizationError(w.Name(), "circuit breaker open", err)
		}
		var se *entity.SummarizationError
		if errors.As(err, &se) {
			return "", err
		}
		return "", entity.NewSummarizationError(w.Name(), "api call failed", err)
	}

	return CleanSummary(SentencesToBullets(result.(string))), nil
}

func (w *Watson) doSummarize(ctx context.Context, noteText string, level int) (string, error) {
	requestID := uuid.New().String()

	payload := watsonAnalyzeRequest{
		Text: truncate(noteText),
		Features: watsonFeatures{
			Summarization: watsonSummarizationOptions{Limit: level},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", entity.NewSummarizationError(w.Name(), "encode request", err)
	}

	url := fmt.Sprintf("%s/v1/analyze?version=%s", w.config.ServiceURL, watsonAPIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", entity.NewSummarizationError(w.Name(), "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("apikey", w.config.APIKey)

	slog.DebugContext(ctx, "starting summarization",
		slog.String("provider", w.Name()),
		slog.String("request_id", requestID),
		slog.Int("input_length", text.CountRunes(noteText)),
		slog.Int("level", level))

	start := time.Now()
	resp, err := w.httpClient.Do(req)
	duration := time.Since(start)
	w.metricsRecorder.RecordDuration(w.Name(), duration)

	if err != nil {
		slog.ErrorContext(ctx, "summarization failed",
			slog.String("provider", w.Name()),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", entity.NewSummarizationError(w.Name(), "api call failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", entity.NewSummarizationError(w.Name(), "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.ErrorContext(ctx, "watson api returned error status",
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.Int("body_length", len(respBody)),
			slog.Duration("duration", duration))
		return "", entity.NewSummarizationError(w.Name(),
			fmt.Sprintf("api returned status %d", resp.StatusCode), nil)
	}

	var analyzed watsonAnalyzeResponse
	if err := json.Unmarshal(respBody, &analyzed); err != nil {
		return "", entity.NewSummarizationError(w.Name(), "decode response", err)
	}

	if analyzed.Summarization == nil || analyzed.Summarization.Text == "" {
		slog.WarnContext(ctx, "watson api did not return a summary",
			slog.String("request_id", requestID),
			slog.Int("body_length", len(respBody)))
		return "", entity.NewSummarizationError(w.Name(), "no summary in response", nil)
	}

	summary := analyzed.Summarization.Text
	w.metricsRecorder.RecordLength(w.Name(), text.CountRunes(summary))

	slog.DebugContext(ctx, "summarization completed",
		slog.String("provider", w.Name()),
		slog.String("request_id", requestID),
		slog.Int("summary_length", text.CountRunes(summary)),
		slog.Duration("duration", duration))

	return summary, nil
}
