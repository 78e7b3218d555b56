package aggregators

import (
	"log-analyzer/internal/shared/metrics"
)

// metricParsedShare observes the share of parsed lines of every fully read log.
//
// Shares close to 1 are the norm for a healthy ui log; a run whose share falls under
// acceptable_parsed_share is still observed here before it is rejected, so a drift of the log
// format shows up as mass moving into the low buckets.
var (
	metricParsedShare = metrics.NewHistogram(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "parsed_share",
			Buckets:   []float64{0.1, 0.2, 0.333, 0.5, 0.75, 0.9, 0.99, 1},
		},
	)
)
