// Package metrics holds the Prometheus collectors exported on the metrics
// server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Analysis outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedx_analyses_total",
			Help: "Analyses attempted, by outcome",
		},
		[]string{"outcome"},
	)

	PerformanceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "speedx_performance_score",
			Help:    "Aggregate performance score of successful analyses",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	MetricTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedx_metric_tier_total",
			Help: "Raw metric classifications, by metric and tier",
		},
		[]string{"metric", "tier"},
	)

	HistoryPersistFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "speedx_history_persist_failures_total",
			Help: "History writes that failed after the in-memory append",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AnalysesTotal,
		PerformanceScore,
		MetricTierTotal,
		HistoryPersistFailures,
	)
}
