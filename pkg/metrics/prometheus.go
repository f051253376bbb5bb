// Package metrics provides Prometheus metrics for the internmatch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the matching service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a recommender
	recommendationsServed prometheus.Counter
	recommendationsEmpty  prometheus.Counter
	candidatesNotFound    prometheus.Counter
	rankingLatency        prometheus.Histogram

	// Filter Pipeline Metrics
	filterDropped  *prometheus.CounterVec
	filterReverted *prometheus.CounterVec

	// Catalog Snapshot Metrics
	catalogCandidates    prometheus.Gauge
	catalogOpportunities prometheus.Gauge
	catalogReloads       prometheus.Counter
	vocabularySize       prometheus.Gauge

	// Batch Metrics
	batchCandidatesProcessed prometheus.Counter
	batchCandidateErrors     prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "internmatch",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.recommendationsServed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_served_total",
		Help:      "Total number of recommendation requests answered with a non-empty list",
	})

	m.recommendationsEmpty = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recommendations_empty_total",
		Help:      "Total number of recommendation requests answered with an empty list",
	})

	m.candidatesNotFound = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_not_found_total",
		Help:      "Total number of lookups for candidate IDs missing from the catalog",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "Histogram of end-to-end filter+rank+explain latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.filterDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_dropped_total",
		Help:      "Opportunities dropped per filter stage",
	}, []string{"stage"})

	m.filterReverted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "filter_reverted_total",
		Help:      "Times a filter stage emptied the pool and was reverted",
	}, []string{"stage"})

	m.catalogCandidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_candidates",
		Help:      "Number of candidate profiles in the active catalog snapshot",
	})

	m.catalogOpportunities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_opportunities",
		Help:      "Number of opportunities in the active catalog snapshot",
	})

	m.catalogReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_reloads_total",
		Help:      "Total number of catalog snapshot builds",
	})

	m.vocabularySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vocabulary_size",
		Help:      "Number of terms in the fitted vectorizer vocabulary",
	})

	m.batchCandidatesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_candidates_processed_total",
		Help:      "Candidates processed via batch recommendation requests",
	})

	m.batchCandidateErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_candidate_errors_total",
		Help:      "Per-candidate failures inside batch recommendation requests",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration by endpoint, method and status code",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and error type",
	}, []string{"component", "error_type"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP-level errors by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordRecommendationServed increments the served recommendations counter.
func RecordRecommendationServed() {
	globalManager.recommendationsServed.Inc()
}

// RecordRecommendationEmpty increments the empty-result counter.
func RecordRecommendationEmpty() {
	globalManager.recommendationsEmpty.Inc()
}

// RecordCandidateNotFound increments the not-found counter.
func RecordCandidateNotFound() {
	globalManager.candidatesNotFound.Inc()
}

// RecordRankingLatency records end-to-end ranking latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordFilterDropped adds to the dropped counter for a filter stage.
func RecordFilterDropped(stage string, n int) {
	globalManager.filterDropped.WithLabelValues(stage).Add(float64(n))
}

// RecordFilterReverted increments the revert counter for a filter stage.
func RecordFilterReverted(stage string) {
	globalManager.filterReverted.WithLabelValues(stage).Inc()
}

// UpdateCatalogCandidates sets the candidate count gauge.
func UpdateCatalogCandidates(count int) {
	globalManager.catalogCandidates.Set(float64(count))
}

// UpdateCatalogOpportunities sets the opportunity count gauge.
func UpdateCatalogOpportunities(count int) {
	globalManager.catalogOpportunities.Set(float64(count))
}

// RecordCatalogReload increments the snapshot build counter.
func RecordCatalogReload() {
	globalManager.catalogReloads.Inc()
}

// UpdateVocabularySize sets the vectorizer vocabulary size gauge.
func UpdateVocabularySize(size int) {
	globalManager.vocabularySize.Set(float64(size))
}

// RecordBatchCandidateProcessed increments the batch processed counter.
func RecordBatchCandidateProcessed() {
	globalManager.batchCandidatesProcessed.Inc()
}

// RecordBatchCandidateError increments the batch per-candidate error counter.
func RecordBatchCandidateError() {
	globalManager.batchCandidateErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
