// Package metrics exposes Prometheus metrics for HTTP traffic and the merge pipeline.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/application/port"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "office"

// Metrics holds the application registry and collectors
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	mergesTotal     *prometheus.CounterVec
	mergedPages     prometheus.Histogram
	skippedInputs   prometheus.Counter
	uploadsTotal    prometheus.Counter
	cleanupsTotal   *prometheus.CounterVec
}

// New creates a registry with HTTP, pipeline and Go runtime metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		mergesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_merges_total",
			Help:      "PDF merges by result.",
		}, []string{"result"}),
		mergedPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pdf_merged_pages",
			Help:      "Pages per merged PDF.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		skippedInputs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pdf_skipped_inputs_total",
			Help:      "Uploaded files that produced no page.",
		}),
		uploadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Uploaded files stored.",
		}),
		cleanupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_cleanups_total",
			Help:      "File removals by area and result.",
		}, []string{"area", "result"}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.mergesTotal,
		m.mergedPages,
		m.skippedInputs,
		m.uploadsTotal,
		m.cleanupsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler serves the exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request counts and latency per route pattern
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveMerge implements port.MetricsRecorder
func (m *Metrics) ObserveMerge(pages, skipped int, err error) {
	if m == nil {
		return
	}
	m.skippedInputs.Add(float64(skipped))
	switch {
	case err != nil:
		m.mergesTotal.WithLabelValues("error").Inc()
	case pages == 0:
		m.mergesTotal.WithLabelValues("empty").Inc()
	default:
		m.mergesTotal.WithLabelValues("ok").Inc()
		m.mergedPages.Observe(float64(pages))
	}
}

// ObserveUploads implements port.MetricsRecorder
func (m *Metrics) ObserveUploads(count int) {
	if m == nil {
		return
	}
	m.uploadsTotal.Add(float64(count))
}

// ObserveCleanup implements port.MetricsRecorder
func (m *Metrics) ObserveCleanup(area string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.cleanupsTotal.WithLabelValues(area, result).Inc()
}

var _ port.MetricsRecorder = (*Metrics)(nil)
