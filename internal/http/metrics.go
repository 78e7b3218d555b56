package http

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricHTTPRequestsTotal counts requests per route pattern, e.g. /reports/{date}.
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
			Help:      "Requests served, by route and answered status.",
		},
		[]string{"method", "route", "status", metrics.FieldErrorCode},
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Help:      "Time to serve a request, including any analysis run it triggered.",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"method", "route", "status", metrics.FieldErrorCode},
	)
)
