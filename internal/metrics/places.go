package metrics

import "github.com/prometheus/client_golang/prometheus"

// Places pipeline Prometheus metrics.
var (
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"operation", "status"},
	)

	UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "placedex",
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	UpstreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "upstream_errors_total",
			Help:      "Total upstream provider errors",
		},
		[]string{"operation", "error_type"},
	)

	AutocompleteQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "autocomplete_queries_total",
			Help:      "Autocomplete queries by outcome",
		},
		[]string{"outcome"}, // "served" / "short_circuit" / "error"
	)

	PlaceCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "placedex",
			Name:      "place_cache_total",
			Help:      "Place cache hits and misses",
		},
		[]string{"kind", "result"}, // kind: "suggest" / "detail"; result: "hit" / "miss"
	)
)

var placesMetricsRegistered bool

// RegisterPlacesMetrics registers Prometheus places metrics. Must be called once from main.
func RegisterPlacesMetrics() {
	if placesMetricsRegistered {
		return
	}
	prometheus.MustRegister(UpstreamRequestsTotal)
	prometheus.MustRegister(UpstreamRequestDuration)
	prometheus.MustRegister(UpstreamErrorsTotal)
	prometheus.MustRegister(AutocompleteQueriesTotal)
	prometheus.MustRegister(PlaceCacheTotal)
	placesMetricsRegistered = true
}
