package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Statement metrics
	StatementsProcessed prometheus.Counter
	StatementsFailed    prometheus.Counter
	ProcessingDuration  prometheus.Histogram
	StatementRows       prometheus.Histogram

	// Ledger metrics
	TransactionsExtracted prometheus.Counter
	RowsRejected          *prometheus.CounterVec
	BalanceMismatches     prometheus.Counter
	DuplicatesDropped     prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Result store metrics
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Statement metrics
		StatementsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_statements_processed_total",
			Help: "Total number of statements processed successfully",
		}),
		StatementsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_statements_failed_total",
			Help: "Total number of statements that failed processing",
		}),
		ProcessingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gostatement_processing_duration_seconds",
			Help:    "Duration of statement processing",
			Buckets: prometheus.DefBuckets,
		}),
		StatementRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gostatement_statement_rows",
			Help:    "Raw rows per processed statement",
			Buckets: []float64{10, 50, 100, 500, 1000, 5000, 10000},
		}),

		// Ledger metrics
		TransactionsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_transactions_extracted_total",
			Help: "Total number of transactions extracted",
		}),
		RowsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_rows_rejected_total",
				Help: "Total rejected rows by reason",
			},
			[]string{"reason"},
		),
		BalanceMismatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_balance_mismatches_total",
			Help: "Total running-balance mismatches detected",
		}),
		DuplicatesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_duplicates_dropped_total",
			Help: "Total adjacent duplicate rows dropped",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gostatement_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Result store metrics
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_result_cache_hits_total",
			Help: "Total result store hits for repeated request IDs",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gostatement_result_cache_misses_total",
			Help: "Total result store misses",
		}),
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gostatement_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
