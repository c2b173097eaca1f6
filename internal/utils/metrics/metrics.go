package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_http_requests_total",
			Help: "Total number of HTTP requests handled by the auth service.",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration observes request latency by route.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// LoginAttemptsTotal counts login outcomes.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Login attempts by result.",
		},
		[]string{"result"},
	)

	// TokenReuseDetectedTotal counts redemptions of already rotated or
	// revoked refresh tokens, a possible token-theft signal.
	TokenReuseDetectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_reuse_detected_total",
			Help: "Refresh token redemptions that failed liveness validation.",
		},
	)
)

// Handler exposes the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
