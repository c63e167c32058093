package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"smartpark/infras/metrics"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := metrics.NewWithRegistry("test", registry)

	m.Claim(metrics.ResultSuccess)
	m.Claim(metrics.ResultSuccess)
	m.Claim("slot_contention")
	m.Release("admin", metrics.ResultSuccess)
	m.Alert("expired", metrics.ResultFailure)
	m.AlertCycle(20 * time.Millisecond)
	m.HTTPRequest("/v1/entries", http.MethodPost, http.StatusCreated, time.Millisecond)

	expected := `
# HELP test_slot_claims_total Slot claim attempts by result.
# TYPE test_slot_claims_total counter
test_slot_claims_total{result="slot_contention"} 1
test_slot_claims_total{result="success"} 2
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_slot_claims_total"))

	count, err := testutil.GatherAndCount(registry, "test_slot_releases_total", "test_alerts_total", "test_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMetrics_Handler(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	m.Claim(metrics.ResultSuccess)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `test_slot_claims_total{result="success"} 1`)
}
