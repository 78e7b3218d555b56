package parsers

import (
	"log-analyzer/internal/shared/metrics"
)

const (
	statusParsed    = "parsed"
	statusUnmatched = "unmatched"
)

var (
	// metricRecordsTotal counts access log lines by parse status.
	metricRecordsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParser,
			Name:      "records_total",
		},
		[]string{"status"},
	)

	metricParsedRecords    = metricRecordsTotal.WithLabelValues(statusParsed)
	metricUnmatchedRecords = metricRecordsTotal.WithLabelValues(statusUnmatched)

	// metricOversizedLines counts lines dropped for exceeding the line length limit. They are
	// also counted as unmatched records.
	metricOversizedLines = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParser,
			Name:      "oversized_lines_total",
		},
	)
)
