package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records submission outcomes for the quote pipeline.
type QuoteMetrics struct {
	submitted *prometheus.CounterVec
	failed    *prometheus.CounterVec
	total     prometheus.Histogram
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_submitted_total",
		Help: "Successful quote submissions.",
	}, []string{"channel"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_failed_total",
		Help: "Quote submissions rejected or failed at persistence.",
	}, []string{"reason"})
	total := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_total_pesos",
		Help:    "Distribution of submitted quote totals in pesos.",
		Buckets: prometheus.ExponentialBuckets(10_000, 4, 8),
	})
	reg.MustRegister(submitted, failed, total)
	return &QuoteMetrics{
		submitted: submitted,
		failed:    failed,
		total:     total,
	}
}

// IncSubmitted increments the success counter for the given handoff channel.
func (q *QuoteMetrics) IncSubmitted(channel string) {
	if q == nil || q.submitted == nil {
		return
	}
	q.submitted.WithLabelValues(normalizeLabel(channel)).Inc()
}

// IncFailed increments the failure counter for the named reason.
func (q *QuoteMetrics) IncFailed(reason string) {
	if q == nil || q.failed == nil {
		return
	}
	q.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// ObserveTotal records the submitted quote total.
func (q *QuoteMetrics) ObserveTotal(pesos float64) {
	if q == nil || q.total == nil {
		return
	}
	q.total.Observe(pesos)
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return strings.ReplaceAll(trimmed, " ", "_")
}
