package locators

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	skipReasonInvalidDate            = "invalid_date"
	skipReasonUnsupportedCompression = "unsupported_compression"
)

var (
	// metricLogFileLocatedTotal counts selected logs by compression ("plain", "gzip", ...).
	metricLogFileLocatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLocator,
			Name:      "log_file_located_total",
		},
		[]string{"compression"},
	)

	// metricLogFileSkippedTotal counts names that looked like rotated logs but were ignored.
	metricLogFileSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLocator,
			Name:      "log_file_skipped_total",
		},
		[]string{"reason"},
	)
)
