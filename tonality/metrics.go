package tonality

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// calculatorMetrics are per-Calculator collectors. promauto.With(nil) creates
// them without registering, so tests can use several Calculators.
type calculatorMetrics struct {
	builds        prometheus.Counter
	buildErrors   prometheus.Counter
	sharedBuilds  prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cacheSize     prometheus.Gauge
	buildDuration prometheus.Histogram
}

func newCalculatorMetrics(reg prometheus.Registerer) *calculatorMetrics {
	f := promauto.With(reg)

	return &calculatorMetrics{
		builds: f.NewCounter(prometheus.CounterOpts{
			Name: "tonality_tensor_builds_total",
			Help: "Total modulation graph and tensor builds",
		}),
		buildErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "tonality_tensor_build_errors_total",
			Help: "Total failed builds (invalid weights)",
		}),
		sharedBuilds: f.NewCounter(prometheus.CounterOpts{
			Name: "tonality_tensor_shared_builds_total",
			Help: "Cache misses served by a build already in flight",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "tonality_cache_hits_total",
			Help: "Number of tensor cache hits",
		}),
		cacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "tonality_cache_misses_total",
			Help: "Number of tensor cache misses",
		}),
		cacheSize: f.NewGauge(prometheus.GaugeOpts{
			Name: "tonality_cache_entries",
			Help: "Number of cached weight sets",
		}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tonality_tensor_build_duration_seconds",
			Help:    "Time spent building a graph and its tensor",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
}
