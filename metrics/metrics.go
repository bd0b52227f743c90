// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poirec_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poirec_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Search
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poirec_search_requests_total",
			Help: "Total number of POI searches by outcome",
		},
		[]string{"kind", "outcome"}, // kind: "pois", "names", "categories"
	)

	SearchResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poirec_search_results",
			Help:    "Number of results returned per search",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)

	// Recommender
	RecommenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poirec_recommender_duration_seconds",
			Help:    "Duration of calls to the external recommender",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	RecommenderCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poirec_recommender_candidates",
			Help:    "Number of candidate POIs sent to the recommender",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poirec_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// User cache
	UserCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poirec_user_cache_hits_total",
			Help: "Total number of user cache hits",
		},
	)

	UserCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "poirec_user_cache_misses_total",
			Help: "Total number of user cache misses",
		},
	)
)

// RecordHTTPRequest observes one finished request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}

// RecordSearch counts a search and, on success, how many results it returned.
func RecordSearch(kind string, results int, err error) {
	if err != nil {
		SearchRequests.WithLabelValues(kind, "error").Inc()
		return
	}
	SearchRequests.WithLabelValues(kind, "ok").Inc()
	SearchResults.WithLabelValues(kind).Observe(float64(results))
}

func RecordRecommenderCall(outcome string, candidates int, duration time.Duration) {
	RecommenderDuration.WithLabelValues(outcome).Observe(duration.Seconds())
	RecommenderCandidates.Observe(float64(candidates))
}
