package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TransformAttempts tracks external capability attempts by outcome
	TransformAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewriter_transform_attempts_total",
			Help: "Total number of external transform attempts",
		},
		[]string{"backend", "outcome"},
	)

	// TransformLatency tracks external attempt latency
	TransformLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rewriter_transform_latency_seconds",
			Help:    "External transform attempt latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// FallbacksTotal tracks which cascade level resolved an item
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewriter_fallbacks_total",
			Help: "Total number of items resolved by each fallback strategy",
		},
		[]string{"strategy"},
	)

	// ValidationSubstitutions tracks items where the candidate failed the
	// length gate and the original text was substituted
	ValidationSubstitutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewriter_validation_substitutions_total",
			Help: "Total number of items that fell back to their original text at the length gate",
		},
	)

	// ItemsProcessed tracks items per final strategy
	ItemsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rewriter_items_processed_total",
			Help: "Total number of items processed",
		},
		[]string{"strategy"},
	)

	// BatchDuration tracks whole-batch processing time
	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rewriter_batch_duration_seconds",
			Help:    "Batch processing duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// CacheHits tracks rewrite cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rewriter_cache_hits_total",
			Help: "Total number of rewrite cache hits",
		},
	)

	// DBConnectionPoolUsage tracks database connection pool usage percentage
	DBConnectionPoolUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rewriter_db_connection_pool_usage_percent",
			Help: "Database connection pool usage percentage",
		},
	)
)
