// Package summarizer provides the provider adapters that turn slide
// notes into bullet-point summaries. Each adapter wraps one external
// API (OpenAI, Anthropic Claude, IBM Watson NLU) and normalizes its
// response shape and failure modes into a single contract: canonical
// bullet text on success, entity.SummarizationError on any failure.
package summarizer

import (
	"context"
	"fmt"
)

// Provider is the single capability the orchestrator depends on.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Summarize condenses text into approximately level bullet points.
	// Every failure mode is returned as a *entity.SummarizationError.
	Summarize(ctx context.Context, text string, level int) (string, error)

	// Name returns the provider identifier used in logs and outcomes.
	Name() string
}

// maxInputChars caps the note text sent to a provider. Speaker notes
// rarely approach this, but a pasted transcript can.
const maxInputChars = 10000

// buildPrompt constructs the instruction shared by the chat-style
// providers. The bullet format it demands is still normalized through
// CleanSummary afterwards since models do not always comply.
func buildPrompt(text string, level int) string {
	return fmt.Sprintf("Summarize the following notes into approximately %d bullet points. "+
		"Start each bullet point with '-' and ensure each is complete. "+
		"Do not include any introductory text:\n\n%s", level, text)
}

// truncate bounds the input text, marking the cut so the model does not
// invent a conclusion for the missing part. The limit counts runes, not
// bytes, so multi-byte content is never split mid-character.
func truncate(text string) string {
	if len(text) <= maxInputChars {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxInputChars {
		return text
	}
	return string(runes[:maxInputChars]) + "...\n(content truncated due to length)"
}
