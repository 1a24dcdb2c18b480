package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// API metrics
var (
	// APIRequestsTotal requests by route and status
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deep_shiva_api_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "path", "status"},
	)

	// APIRequestDuration latency in seconds
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deep_shiva_api_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// APIRequestSize request body size in bytes
	APIRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deep_shiva_api_request_size_bytes",
			Help:    "API request body size",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// APIResponseSize response body size in bytes
	APIResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deep_shiva_api_response_size_bytes",
			Help:    "API response body size",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		},
		[]string{"method", "path"},
	)

	// RequestFailuresTotal failures recovered by the logging stage
	RequestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deep_shiva_request_failures_total",
			Help: "Requests that failed with an unhandled error",
		},
		[]string{"method"},
	)
)

// Security metrics
var (
	// RateLimitRejectionsTotal requests answered with 429
	RateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deep_shiva_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	// SuspiciousRequestsTotal requests matching an attack signature
	SuspiciousRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deep_shiva_suspicious_requests_total",
			Help: "Requests matching a suspicious pattern",
		},
		[]string{"pattern"},
	)
)

// LLM metrics
var (
	// LLMRequestsTotal gateway calls by outcome (success, fallback)
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deep_shiva_llm_requests_total",
			Help: "LLM gateway calls",
		},
		[]string{"provider", "model", "outcome"},
	)

	// LLMRequestDuration gateway latency in seconds
	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deep_shiva_llm_request_duration_seconds",
			Help:    "LLM gateway latency",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider"},
	)
)

// Database metrics
var (
	// DBQueryDuration GORM statement latency in seconds
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "deep_shiva_db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
)

// RecordLLMCall observes one gateway call
func RecordLLMCall(provider, model, outcome string, seconds float64) {
	LLMRequestsTotal.WithLabelValues(provider, model, outcome).Inc()
	LLMRequestDuration.WithLabelValues(provider).Observe(seconds)
}
