package summarizer

import "context"

// NoOp is a provider that returns the note text unchanged. It backs
// extract-only runs and tests where no network provider is wanted.
type NoOp struct{}

// NewNoOp creates a new NoOp provider.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Name implements Provider.
func (n *NoOp) Name() string {
	return "noop"
}

// Summarize implements Provider by echoing the input.
func (n *NoOp) Summarize(_ context.Context, noteText string, _ int) (string, error) {
	return noteText, nil
}
