package summarizer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deckbrief/internal/domain/entity"
	"deckbrief/internal/infra/summarizer"
)

func newClaude(serverURL string) *summarizer.Claude {
	return summarizer.NewClaude(summarizer.ClaudeConfig{
		APIKey:    "ak-test",
		Model:     "claude-3-5-haiku-latest",
		MaxTokens: 256,
		Timeout:   5 * time.Second,
		BaseURL:   serverURL,
		Metrics:   summarizer.NoopMetrics{},
	})
}

func messageResponse(content string) map[string]any {
	return map[string]any{
		"id":   "msg_test",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": content},
		},
		"model":       "claude-3-5-haiku-latest",
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 20},
	}
}

func TestClaude_Summarize_NormalizesBullets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/messages")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(messageResponse("- first bullet\n- - second bullet\n"))
	}))
	defer server.Close()

	got, err := newClaude(server.URL).Summarize(context.Background(), "speaker notes", 2)
	require.NoError(t, err)

	assert.Equal(t, "- first bullet\n- second bullet", got)
}

func TestClaude_Summarize_AuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer server.Close()

	_, err := newClaude(server.URL).Summarize(context.Background(), "notes", 5)
	require.Error(t, err)
	assert.True(t, entity.IsSummarizationError(err),
		"every failure shape must normalize to SummarizationError, got %v", err)
}

func TestClaude_Summarize_EmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := messageResponse("")
		resp["content"] = []any{}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	_, err := newClaude(server.URL).Summarize(context.Background(), "notes", 5)
	require.Error(t, err)
	assert.True(t, entity.IsSummarizationError(err))
	assert.Contains(t, err.Error(), "empty response")
}
