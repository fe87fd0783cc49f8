package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"method", "path", "status"},
	)
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	ClaimsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "faucet_claims_total", Help: "Claim attempts by chain and outcome"},
		[]string{"chain_id", "outcome"},
	)
	RateLimitHits = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "faucet_rate_limited_total", Help: "Claims rejected by the 24h gate"},
	)
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, ClaimsTotal, RateLimitHits)
}
