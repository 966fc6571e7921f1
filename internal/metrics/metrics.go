package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lowstock"

// Upstream endpoints.
const (
	EndpointTree   = "subject_tree"
	EndpointSearch = "search"
	EndpointDetail = "card_detail"
)

// Upstream outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
	OutcomeCached = "cached"
)

var (
	// RequestCounter counts inbound HTTP requests.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records inbound request duration in seconds.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// UpstreamRequests counts calls to marketplace endpoints by outcome.
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Marketplace requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	// UpstreamDuration records marketplace call latency in seconds.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of marketplace requests in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// SearchResults records how many products each search returned.
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of low-stock products returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// ObserveUpstream records one marketplace call.
func ObserveUpstream(endpoint, outcome string, started time.Time) {
	UpstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != OutcomeCached {
		UpstreamDuration.WithLabelValues(endpoint).Observe(time.Since(started).Seconds())
	}
}

// Handler returns an HTTP handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
