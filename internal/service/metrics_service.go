package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry exposed on /metrics.
// A nil *MetricsService is valid and records nothing.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	searches        *prometheus.CounterVec
	auditJobs       *prometheus.CounterVec
}

// NewMetricsService registers the portal collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache writes",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result",
		}, []string{"result"}),
		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "content_store_duration_seconds",
			Help:    "Duration of content store reads",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection", "op"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_store_errors_total",
			Help: "Content store failures surfaced as STORE_UNAVAILABLE",
		}, []string{"collection", "op"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "content_mutations_total",
			Help: "Successful admin mutations",
		}, []string{"collection", "action"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Aggregated searches by cache outcome",
		}, []string{"cached"}),
		auditJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_jobs_total",
			Help: "Audit entries by outcome",
		}, []string{"status"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite, m.cacheLookups,
		m.storeDuration, m.storeErrors, m.mutations, m.searches, m.auditJobs,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request latency and count.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache lookup outcome.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration of cache writes.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveStore records a content store call and whether it failed.
func (m *MetricsService) ObserveStore(collection, op string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(collection, op).Observe(duration.Seconds())
	if err != nil {
		m.storeErrors.WithLabelValues(collection, op).Inc()
	}
}

// RecordMutation counts a successful admin write.
func (m *MetricsService) RecordMutation(collection, action string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(collection, action).Inc()
}

// RecordSearch counts an aggregated search.
func (m *MetricsService) RecordSearch(cached bool) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(strconv.FormatBool(cached)).Inc()
}

// RecordAuditJob counts an audit entry by status (written, failed, dropped).
func (m *MetricsService) RecordAuditJob(status string) {
	if m == nil {
		return
	}
	m.auditJobs.WithLabelValues(status).Inc()
}
