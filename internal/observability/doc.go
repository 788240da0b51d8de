// Package observability centralizes observability concerns for the
// summarization pipeline.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//
// Prometheus metrics live next to the provider adapters they measure
// (see internal/infra/summarizer).
package observability
