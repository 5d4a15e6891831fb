package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leaderboard_loads_total",
		Help: "Total number of leaderboard loads by outcome",
	}, []string{"status"})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "leaderboard_load_duration_seconds",
		Help:    "Duration of leaderboard loads including cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leaderboard_cache_hits_total",
		Help: "Total number of table cache hits by layer",
	}, []string{"layer"})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_cache_misses_total",
		Help: "Total number of table cache misses",
	})

	chartsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_charts_skipped_total",
		Help: "Total number of charts skipped because their data was empty",
	})

	uploadsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leaderboard_uploads_stored_total",
		Help: "Total number of uploaded CSV files accepted",
	})
)
