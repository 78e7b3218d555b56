package analyzers

import (
	"log-analyzer/internal/shared/metrics"
)

const metricOutcomeFailed = "failed"

// metricRunTotal counts analysis runs by outcome and error code.
//
// Successful runs carry their outcome (no_log_found, report_already_exists, report_generated)
// and an empty error_code; failed runs carry outcome "failed" and the service error code, e.g.
// outcome="failed",error_code="ANL_1000" for a log rejected for low parse quality.
var (
	metricRunTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "run_total",
		},
		[]string{"outcome", metrics.FieldErrorCode},
	)
)
