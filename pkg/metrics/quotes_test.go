package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteMetricsCounters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewQuoteMetrics(reg)

	m.IncSubmitted("whatsapp")
	m.IncSubmitted("whatsapp")
	m.IncFailed("persistence")
	m.ObserveTotal(2600)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.submitted.WithLabelValues("whatsapp")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.failed.WithLabelValues("persistence")))
}

func TestQuoteMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *QuoteMetrics
	m.IncSubmitted("whatsapp")
	m.IncFailed("validation")
	m.ObserveTotal(100)

	empty := NewQuoteMetrics(nil)
	empty.IncSubmitted("whatsapp")
}

func TestNormalizeLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unknown", normalizeLabel("  "))
	assert.Equal(t, "line_items", normalizeLabel("Line Items"))
}
