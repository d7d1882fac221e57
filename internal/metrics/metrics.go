// Package metrics provides Prometheus metrics for the document service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kyo_docs"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Library metrics
	DocumentsLoaded prometheus.Gauge
	FetchFailures   *prometheus.CounterVec
	LastLoad        prometheus.Gauge

	// Content cache metrics
	ContentCacheHits   prometheus.Counter
	ContentCacheMisses prometheus.Counter

	// Tool metrics
	ToolCallsTotal *prometheus.CounterVec
}

// New creates the metrics on a fresh registry, so several instances can
// coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{registry: reg}

	m.HTTPRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	m.HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	m.DocumentsLoaded = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents_loaded",
			Help:      "Number of documents in the current snapshot",
		},
	)

	m.FetchFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_fetch_failures_total",
			Help:      "Total number of failed backend fetches",
		},
		[]string{"resource"},
	)

	m.LastLoad = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time of the last snapshot load",
		},
	)

	m.ContentCacheHits = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_hits_total",
			Help:      "Total number of document content cache hits",
		},
	)

	m.ContentCacheMisses = factory.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_cache_misses_total",
			Help:      "Total number of document content cache misses",
		},
	)

	m.ToolCallsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveLoad records a snapshot load.
func (m *Metrics) ObserveLoad(documents int, at time.Time) {
	m.DocumentsLoaded.Set(float64(documents))
	m.LastLoad.Set(float64(at.Unix()))
}

// FetchFailed records a failed backend fetch of resource.
func (m *Metrics) FetchFailed(resource string) {
	m.FetchFailures.WithLabelValues(resource).Inc()
}

// ToolCalled records an MCP tool call.
func (m *Metrics) ToolCalled(tool string, failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	m.ToolCallsTotal.WithLabelValues(tool, status).Inc()
}

// CacheHit records a content cache hit.
func (m *Metrics) CacheHit() {
	m.ContentCacheHits.Inc()
}

// CacheMiss records a content cache miss.
func (m *Metrics) CacheMiss() {
	m.ContentCacheMisses.Inc()
}
