// Package resilience contains reliability patterns for provider calls:
// bounded exponential-backoff retry and circuit breaking.
package resilience
