// Package metrics provides Prometheus metrics for the expert finder service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Search pipeline metrics.
	searchesTotal        prometheus.Counter
	searchFallbacks      prometheus.Counter
	searchFailures       prometheus.Counter
	opportunityFailures  prometheus.Counter
	expertsReturned      prometheus.Histogram
	warehouseErrors      *prometheus.CounterVec
	warehouseQueryMillis *prometheus.HistogramVec

	// Cache metrics.
	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSize   *prometheus.GaugeVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "expertfinder",
		subsystem:        "search",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.searchesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "searches_total",
		Help:      "Total number of expert searches executed",
	})

	m.searchFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_fallbacks_total",
		Help:      "Total number of searches that fell back to the simplified query",
	})

	m.searchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_failures_total",
		Help:      "Total number of searches where both skills queries failed",
	})

	m.opportunityFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "opportunity_failures_total",
		Help:      "Total number of opportunity queries that failed and degraded to empty",
	})

	m.expertsReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "experts_returned",
		Help:      "Distribution of result counts per search",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	m.warehouseErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "warehouse_errors_total",
			Help:      "Total number of warehouse query errors by query",
		},
		[]string{"query"},
	)

	m.warehouseQueryMillis = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "warehouse_query_duration_milliseconds",
			Help:      "Warehouse query latency in milliseconds by query",
			Buckets:   m.histogramBuckets,
		},
		[]string{"query"},
	)

	m.cacheHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_hits_total",
			Help:      "Total number of memoization cache hits by cache",
		},
		[]string{"cache"},
	)

	m.cacheMisses = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_misses_total",
			Help:      "Total number of memoization cache misses by cache",
		},
		[]string{"cache"},
	)

	m.cacheSize = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_entries",
			Help:      "Current number of memoized entries by cache",
		},
		[]string{"cache"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

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

// GetRegistry returns the registry metrics are exposed from.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordSearch counts an executed expert search.
func RecordSearch() { globalManager.searchesTotal.Inc() }

// RecordSearchFallback counts a search served by the simplified query.
func RecordSearchFallback() { globalManager.searchFallbacks.Inc() }

// RecordSearchFailure counts a search where both skills queries failed.
func RecordSearchFailure() { globalManager.searchFailures.Inc() }

// RecordOpportunityFailure counts an opportunity query degraded to empty.
func RecordOpportunityFailure() { globalManager.opportunityFailures.Inc() }

// ObserveExpertsReturned records the result count of one search.
func ObserveExpertsReturned(n int) { globalManager.expertsReturned.Observe(float64(n)) }

// RecordWarehouseError counts a warehouse query error.
func RecordWarehouseError(query string) {
	globalManager.warehouseErrors.WithLabelValues(query).Inc()
}

// ObserveWarehouseQuery records one warehouse query latency in milliseconds.
func ObserveWarehouseQuery(query string, ms float64) {
	globalManager.warehouseQueryMillis.WithLabelValues(query).Observe(ms)
}

// RecordCacheHit counts a memoization hit.
func RecordCacheHit(cache string) { globalManager.cacheHits.WithLabelValues(cache).Inc() }

// RecordCacheMiss counts a memoization miss.
func RecordCacheMiss(cache string) { globalManager.cacheMisses.WithLabelValues(cache).Inc() }

// UpdateCacheSize sets the current entry count of a cache.
func UpdateCacheSize(cache string, n int) {
	globalManager.cacheSize.WithLabelValues(cache).Set(float64(n))
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// UpdateSystemMemoryUsage sets the current allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}
