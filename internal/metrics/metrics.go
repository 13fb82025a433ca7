// Package metrics holds the Prometheus collectors shared by the HTTP
// surface and the orchestrator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	AIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_requests_total",
		Help: "Provider completion attempts by outcome",
	}, []string{"provider", "flow", "outcome"})

	AIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ai_request_duration_seconds",
		Help:    "Latency of provider completion calls",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"provider"})

	FallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_fallbacks_total",
		Help: "Requests answered offline, by flow and reason",
	}, []string{"flow", "reason"})

	CompletionCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "completion_cache_lookups_total",
		Help: "Completion cache lookups by result",
	}, []string{"result"})

	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyses_total",
		Help: "Analysis results by mental state and source",
	}, []string{"state", "source"})

	StressLevel = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "stress_level",
		Help:    "Distribution of reported stress levels",
		Buckets: prometheus.LinearBuckets(10, 10, 10),
	})
)

// Flow labels.
const (
	FlowAnalyze  = "analyze"
	FlowQuestion = "question"
)

// Fallback reasons.
const (
	ReasonNotConfigured = "not_configured"
	ReasonProviderError = "provider_error"
)
