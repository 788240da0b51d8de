package summarizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SummaryMetricsRecorder abstracts metrics recording so tests can inject
// a no-op and the adapters stay independent of the metrics backend.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in runes.
	RecordLength(provider string, length int)

	// RecordDuration records the time a provider call took.
	RecordDuration(provider string, duration time.Duration)

	// RecordFailure increments the failure counter for a provider.
	RecordFailure(provider string)
}

// PrometheusSummaryMetrics records summarization metrics to the default
// Prometheus registry.
type PrometheusSummaryMetrics struct {
	lengthHistogram   *prometheus.HistogramVec
	durationHistogram *prometheus.HistogramVec
	failureCounter    *prometheus.CounterVec
}

// getOrCreateHistogramVec registers a histogram vector, reusing the
// existing collector when the same metric was already registered.
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	return h
}

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
	}
	return c
}

// NewPrometheusSummaryMetrics creates the Prometheus-backed recorder.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	return &PrometheusSummaryMetrics{
		lengthHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
			Name:    "deckbrief_summary_length_chars",
			Help:    "Length of generated summaries in characters.",
			Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200},
		}, []string{"provider"}),
		durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
			Name:    "deckbrief_summarization_duration_seconds",
			Help:    "Duration of provider summarization calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
			Name: "deckbrief_summarization_failures_total",
			Help: "Total failed provider summarization calls.",
		}, []string{"provider"}),
	}
}

// RecordLength implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordLength(provider string, length int) {
	p.lengthHistogram.WithLabelValues(provider).Observe(float64(length))
}

// RecordDuration implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordFailure implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}

// NoopMetrics discards all recordings. Used in tests.
type NoopMetrics struct{}

func (NoopMetrics) RecordLength(string, int)             {}
func (NoopMetrics) RecordDuration(string, time.Duration) {}
func (NoopMetrics) RecordFailure(string)                 {}
