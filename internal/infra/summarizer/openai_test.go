package summarizer_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/infra/summarizer"
)

func newOpenAI(serverURL string) *summarizer.OpenAI {
	return summarizer.NewOpenAI(summarizer.OpenAIConfig{
		APIKey:      "sk-test",
		Model:       "gpt-4o-mini",
		MaxTokens:   256,
		Temperature: 0.3,
		Timeout:     5 * time.Second,
		BaseURL:     serverURL + "/v1",
		Metrics:     summarizer.NoopMetrics{},
	})
}

// captureMetrics records which metrics were reported.
type captureMetrics struct {
	lengths   []int
	durations []time.Duration
	failures  int
}

func (c *captureMetrics) RecordLength(_ string, length int) {
	c.lengths = append(c.lengths, length)
}

func (c *captureMetrics) RecordDuration(_ string, d time.Duration) {
	c.durations = append(c.durations, d)
}

func (c *captureMetrics) RecordFailure(string) {
	c.failures++
}

func chatCompletionResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
	}
}

func TestOpenAI_Summarize_NormalizesBullets(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse("- - First point\n\nSecond point\n"))
	}))
	defer server.Close()

	got, err := newOpenAI(server.URL).Summarize(context.Background(), "the speaker notes", 4)
	require.NoError(t, err)

	assert.Equal(t, "- First point\n- Second point", got)
	assert.Contains(t, string(gotBody), "approximately 4 bullet points")
	assert.Contains(t, string(gotBody), "the speaker notes")
}

func TestOpenAI_Summarize_ErrorStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error"}}`,
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`,
		},
		{
			name:       "server error",
			statusCode: http.StatusInternalServerError,
			body:       `{"error": {"message": "Internal server error", "type": "server_error"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newOpenAI(server.URL).Summarize(context.Background(), "notes", 5)
			require.Error(t, err)
			assert.True(t, entity.IsSummarizationError(err),
				"every failure shape must normalize to SummarizationError, got %v", err)
		})
	}
}

func TestOpenAI_Summarize_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []any{},
		})
	}))
	defer server.Close()

	_, err := newOpenAI(server.URL).Summarize(context.Background(), "notes", 5)
	require.Error(t, err)
	assert.True(t, entity.IsSummarizationError(err))
	assert.Contains(t, err.Error(), "empty response")
}

func TestOpenAI_Summarize_RecordsInjectedMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse("- a point"))
	}))
	defer server.Close()

	recorder := &captureMetrics{}
	provider := summarizer.NewOpenAI(summarizer.OpenAIConfig{
		APIKey:    "sk-test",
		Model:     "gpt-4o-mini",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
		BaseURL:   server.URL + "/v1",
		Metrics:   recorder,
	})

	_, err := provider.Summarize(context.Background(), "the notes", 3)
	require.NoError(t, err)

	assert.Equal(t, []int{9}, recorder.lengths, "summary length recorded")
	assert.Len(t, recorder.durations, 1)
	assert.Zero(t, recorder.failures)

	server.Close()
	_, err = provider.Summarize(context.Background(), "the notes", 3)
	require.Error(t, err)
	assert.Equal(t, 1, recorder.failures, "failed call recorded")
}

func TestNoOp_Summarize_EchoesInput(t *testing.T) {
	got, err := summarizer.NewNoOp().Summarize(context.Background(), "unchanged notes", 5)
	require.NoError(t, err)
	assert.Equal(t, "unchanged notes", got)
}
