package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Metrics register against the default registry, so these tests do not
// run in parallel with each other.

func gatherCounter(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			if counterMatchesLabels(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func counterMatchesLabels(m *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestMetrics_CountsRequests(t *testing.T) {
	handler := Metrics()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := gatherCounter(t, "routemux_http_requests_total",
		map[string]string{"method": "GET", "status": "418"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	after := gatherCounter(t, "routemux_http_requests_total",
		map[string]string{"method": "GET", "status": "418"})

	assert.Equal(t, before+1, after)
}

func TestMetrics_PanicCounter(t *testing.T) {
	before := gatherCounter(t, "routemux_http_panics_recovered_total", nil)

	getMiddlewareMetrics().panicsRecovered.Inc()

	after := gatherCounter(t, "routemux_http_panics_recovered_total", nil)
	assert.Equal(t, before+1, after)
}
