package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig indicates that configuration validation failed.
// Configuration errors are fatal and surface before any dispatch begins.
var ErrInvalidConfig = errors.New("invalid configuration")

// SummarizationError represents a failed provider call.
// Every provider failure mode (authentication, network, malformed or
// incomplete response) is normalized into this one type so that callers
// never need to distinguish provider-specific failure shapes. Only errors
// of this type are eligible for retry.
type SummarizationError struct {
	Provider string
	Message  string
	Err      error
}

// Error returns a formatted error message including the provider name.
func (e *SummarizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s summarization failed: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("%s summarization failed: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *SummarizationError) Unwrap() error {
	return e.Err
}

// NewSummarizationError wraps cause as a SummarizationError for the given provider.
func NewSummarizationError(provider, message string, cause error) *SummarizationError {
	return &SummarizationError{Provider: provider, Message: message, Err: cause}
}

// IsSummarizationError reports whether err is (or wraps) a SummarizationError.
func IsSummarizationError(err error) bool {
	var se *SummarizationError
	return errors.As(err, &se)
}
