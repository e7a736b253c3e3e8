package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "firecircuit"}, nil)
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	_, err := NewMetricsCollector(CollectorConfig{}, nil)
	assert.Error(t, err)
}

func TestRegisterCounter_CountsAndExposes(t *testing.T) {
	c := newTestCollector(t)

	vec := c.RegisterCounter("devices_mapped_total", "Mapped devices", "class")
	vec.WithLabelValues("notification").Inc()
	vec.WithLabelValues("notification").Add(2)

	body := scrape(t, c)
	assert.Contains(t, body, "firecircuit_devices_mapped_total")
	assert.Contains(t, body, `class="notification"`)
	assert.Contains(t, body, "3")
}

func TestRegisterCounter_DuplicateReturnsSameFamily(t *testing.T) {
	c := newTestCollector(t)

	first := c.RegisterCounter("dup_total", "dup", "l")
	second := c.RegisterCounter("dup_total", "dup", "l")
	first.WithLabelValues("x").Inc()
	second.WithLabelValues("x").Inc()

	body := scrape(t, c)
	assert.Contains(t, body, `firecircuit_dup_total{l="x"} 2`)
}

func TestRegisterGaugeAndHistogram(t *testing.T) {
	c := newTestCollector(t)

	g := c.RegisterGauge("cache_size_entries", "entries", "cache")
	g.WithLabelValues("mapping").Set(12)

	h := c.RegisterHistogram("mapping_duration_seconds", "duration", nil, "class")
	h.WithLabelValues("initiating").Observe(0.002)

	body := scrape(t, c)
	assert.Contains(t, body, `firecircuit_cache_size_entries{cache="mapping"} 12`)
	assert.Contains(t, body, "firecircuit_mapping_duration_seconds_bucket")
}

func TestNewEngineMetrics_RegistersAllFamilies(t *testing.T) {
	c := newTestCollector(t)

	m := NewEngineMetrics(c)
	m.ClassificationsTotal.WithLabelValues("HORN_STROBE", "ok").Inc()
	m.ResolutionsTotal.WithLabelValues("PATTERN").Inc()
	m.CacheHitsTotal.WithLabelValues("mapping").Inc()
	m.ValidationIssuesTotal.WithLabelValues("error", "CIR_001").Inc()

	body := scrape(t, c)
	for _, family := range []string{
		"firecircuit_classifications_total",
		"firecircuit_resolutions_total",
		"firecircuit_cache_hits_total",
		"firecircuit_validation_issues_total",
	} {
		assert.True(t, strings.Contains(body, family), family)
	}
}

func TestTimer_NilHistogramIsSafe(t *testing.T) {
	timer := NewTimer(nil)
	assert.NotPanics(t, timer.ObserveDuration)
}

func scrape(t *testing.T, c MetricsCollector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
