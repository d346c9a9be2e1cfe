package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resumefix"

// Metrics holds the service collectors. Each instance owns its registry so tests
// can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	uploads      *prometheus.CounterVec
	extractions  *prometheus.CounterVec
	uploadSize   prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resumes",
			Name:      "uploads_total",
			Help:      "Resume uploads by content type and result.",
		}, []string{"content_type", "result"}),
		extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extraction",
			Name:      "results_total",
			Help:      "AI extraction calls by outcome.",
		}, []string{"outcome"}),
		uploadSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resumes",
			Name:      "upload_size_bytes",
			Help:      "Size of accepted resume files.",
			Buckets:   []float64{10_000, 50_000, 100_000, 250_000, 500_000, 1_000_000, 2_500_000, 5_000_000, 10_485_760},
		}),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.uploads,
		m.extractions,
		m.uploadSize,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// ObserveUpload records an upload attempt; size is only observed for accepted files.
func (m *Metrics) ObserveUpload(contentType, result string, size int64) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(contentType, result).Inc()
	if result == "accepted" {
		m.uploadSize.Observe(float64(size))
	}
}

func (m *Metrics) ObserveExtraction(ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "fallback"
	}
	m.extractions.WithLabelValues(outcome).Inc()
}
