package entity

import (
	"errors"
	"fmt"
	"testing"
)

func TestSummarizationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *SummarizationError
		want string
	}{
		{
			name: "with cause",
			err:  NewSummarizationError("openai", "api call failed", errors.New("timeout")),
			want: "openai summarization failed: api call failed: timeout",
		},
		{
			name: "without cause",
			err:  &SummarizationError{Provider: "watson", Message: "no summary in response"},
			want: "watson summarization failed: no summary in response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarizationError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSummarizationError("claude", "api call failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestIsSummarizationError(t *testing.T) {
	direct := NewSummarizationError("openai", "boom", nil)
	wrapped := fmt.Errorf("attempt 2: %w", direct)

	if !IsSummarizationError(direct) {
		t.Error("expected true for direct SummarizationError")
	}
	if !IsSummarizationError(wrapped) {
		t.Error("expected true for wrapped SummarizationError")
	}
	if IsSummarizationError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
	if IsSummarizationError(nil) {
		t.Error("expected false for nil")
	}
}

func TestNoteUnit_IsSentinel(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{NoNotesFound, true},
		{NoNotesSlide, true},
		{"", false},
		{"real speaker notes", false},
	}

	for _, tt := range tests {
		u := NoteUnit{Index: 1, Text: tt.text}
		if got := u.IsSentinel(); got != tt.want {
			t.Errorf("IsSentinel(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
