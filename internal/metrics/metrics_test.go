package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := New()

	m.ObserveUpload("application/pdf", "accepted", 2048)
	m.ObserveUpload("text/plain", "rejected", 0)
	m.ObserveExtraction(true)
	m.ObserveExtraction(false)
	m.ObserveExtraction(false)
	m.ObserveRequest("GET /resumes", http.MethodGet, http.StatusOK, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.uploads.WithLabelValues("application/pdf", "accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.extractions.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET /resumes", "GET", "200")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveUpload("application/pdf", "accepted", 1)
	m.ObserveExtraction(true)
	m.ObserveRequest("x", "GET", 200, time.Second)
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveExtraction(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `resumefix_extraction_results_total{outcome="success"} 1`)
}
