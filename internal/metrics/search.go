package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naveeka",
			Name:      "search_queries_total",
			Help:      "Total number of search queries",
		},
		[]string{"operation", "status"},
	)

	SearchQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "naveeka",
			Name:      "search_query_duration_seconds",
			Help:      "Search query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	SearchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "naveeka",
			Name:      "search_results_returned",
			Help:      "Result count per search query",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 200, 500, 1000},
		},
		[]string{"operation"},
	)

	FacetCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "naveeka",
			Name:      "facet_cache_hits_total",
			Help:      "Facet cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		SearchQueriesTotal,
		SearchQueryDuration,
		SearchResultsReturned,
		FacetCacheHitsTotal,
	)
}

// ObserveSearch records one search query outcome.
func ObserveSearch(operation string, seconds float64, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	SearchQueriesTotal.WithLabelValues(operation, status).Inc()
	SearchQueryDuration.WithLabelValues(operation).Observe(seconds)
	if err == nil {
		SearchResultsReturned.WithLabelValues(operation).Observe(float64(results))
	}
}
