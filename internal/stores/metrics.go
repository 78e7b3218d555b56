package stores

import (
	"log-analyzer/internal/shared/metrics"
)

var (
	// metricReportSavedTotal counts reports published to the report directory.
	metricReportSavedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "saved_total",
		},
	)

	metricReportSizeBytes = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "size_bytes",
			Buckets:   []float64{16 << 10, 64 << 10, 256 << 10, 1 << 20, 4 << 20},
		},
	)
)
