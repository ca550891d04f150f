// Package metrics provides Prometheus metrics for the season stats service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Upstream fetches
	upstreamFetches prometheus.Counter
	upstreamErrors  prometheus.Counter
	upstreamLatency prometheus.Histogram

	// Snapshot cache
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheEvictions prometheus.Counter

	// Derivation and ranking
	snapshotsDerived  prometheus.Counter
	recordsDerived    prometheus.Counter
	leaderboardsBuilt prometheus.Counter

	// Token lifecycle
	tokenSwaps prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "seasonstats",
		subsystem:        "stats",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.upstreamFetches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "upstream_fetches_total",
		Help: "Total upstream API requests issued.",
	})
	m.upstreamErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "upstream_errors_total",
		Help: "Upstream API requests that failed.",
	})
	m.upstreamLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "upstream_latency_ms",
		Help:    "Upstream API request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.cacheHits = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_hits_total",
		Help: "Cache hits by entry kind.",
	}, []string{"kind"})
	m.cacheMisses = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_misses_total",
		Help: "Cache misses by entry kind.",
	}, []string{"kind"})
	m.cacheEvictions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "cache_evictions_total",
		Help: "Expired cache entries removed.",
	})

	m.snapshotsDerived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshots_derived_total",
		Help: "Raw snapshots run through the derivation engine.",
	})
	m.recordsDerived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "records_derived_total",
		Help: "Individual stat records derived.",
	})
	m.leaderboardsBuilt = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "leaderboards_built_total",
		Help: "Leaderboards ranked and sliced.",
	})

	m.tokenSwaps = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "token_swaps_total",
		Help: "Successful upstream token replacements.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// GetRegistry returns the registry backing the global manager, for
// serving /metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers on the global manager.

func RecordUpstreamFetch(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamFetches.Inc()
	globalManager.upstreamLatency.Observe(latencyMs)
}

func RecordUpstreamError() {
	if !globalManager.enabled {
		return
	}
	globalManager.upstreamErrors.Inc()
}

func RecordCacheHit(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheHits.WithLabelValues(kind).Inc()
}

func RecordCacheMiss(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheMisses.WithLabelValues(kind).Inc()
}

func RecordCacheEviction() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheEvictions.Inc()
}

// RecordSnapshotDerived notes one derivation pass over records stat lines.
func RecordSnapshotDerived(records int) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotsDerived.Inc()
	globalManager.recordsDerived.Add(float64(records))
}

func RecordLeaderboardBuilt() {
	if !globalManager.enabled {
		return
	}
	globalManager.leaderboardsBuilt.Inc()
}

func RecordTokenSwap() {
	if !globalManager.enabled {
		return
	}
	globalManager.tokenSwaps.Inc()
}

func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
