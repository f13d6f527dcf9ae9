package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limiter_blocked_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"limiter"},
	)
	TaskOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_total",
			Help: "Task lifecycle operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_events_total",
			Help: "Authentication events by kind and outcome",
		},
		[]string{"event", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, RateLimited, TaskOperations, AuthEvents)
}

// Outcome labels an operation result for the counters above.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
