package aggregators

import (
	"context"
	"fmt"

	"log-analyzer/internal/classifiers"
	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/loggers"
)

const (
	progressEvery = 100_000
	ctxCheckEvery = 4096

	// Distinct user agents remembered per run; the rest are classified on every occurrence.
	maxCachedAgents = 10_000
)

// RecordSource yields one record per log line. parsers.RecordScanner is the production source.
type RecordSource interface {
	Scan() bool
	Record() (record models.ParsedRecord, ok bool)
	Err() error
}

// Aggregator folds a whole log into per URL statistics in one forward pass.
//
//go:generate mockgen -source=aggregator.go -destination=./mocks/aggregator_mock.go -package=mocks
type Aggregator interface {
	// Accumulate drains source. It fails with ErrLowParseQuality when the share of parsed lines is
	// below the configured threshold; no result is returned in that case.
	Accumulate(ctx context.Context, source RecordSource) (*models.AggregationResult, error)
}

type aggregator struct {
	acceptableParsedShare float64
	classifier            classifiers.ClientClassifier
}

func NewAggregator(acceptableParsedShare float64, classifier classifiers.ClientClassifier) Aggregator {
	return &aggregator{
		acceptableParsedShare: acceptableParsedShare,
		classifier:            classifier,
	}
}

func (a *aggregator) Accumulate(ctx context.Context, source RecordSource) (*models.AggregationResult, error) {
	logger := loggers.Ctx(ctx)
	result := models.NewAggregationResult()
	families := make(map[string]string)

	for source.Scan() {
		result.TotalRecords++
		if record, ok := source.Record(); ok {
			result.Add(record)
			result.AddClient(a.clientFamily(families, record.UserAgent))
		}

		if result.TotalRecords%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if result.TotalRecords%progressEvery == 0 {
			logger.Debug().
				Int64(loggers.FieldTotalRecords, result.TotalRecords).
				Int64(loggers.FieldParsedRecords, result.ParsedRecords).
				Msg("processing log")
		}
	}
	if err := source.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records after %d lines: %w", result.TotalRecords, err)
	}

	share := result.ParsedShare()
	metricParsedShare.Observe(share)
	logger.Info().
		Int64(loggers.FieldTotalRecords, result.TotalRecords).
		Int64(loggers.FieldParsedRecords, result.ParsedRecords).
		Float64(loggers.FieldParsedShare, share).
		Msg("log processed")

	if share < a.acceptableParsedShare {
		return nil, fmt.Errorf("%w: parsed %d of %d records, share %.3f is below %.3f",
			ErrLowParseQuality, result.ParsedRecords, result.TotalRecords, share, a.acceptableParsedShare)
	}
	return result, nil
}

func (a *aggregator) clientFamily(cache map[string]string, userAgent string) string {
	if family, ok := cache[userAgent]; ok {
		return family
	}
	family := a.classifier.Classify(userAgent)
	if len(cache) < maxCachedAgents {
		cache[userAgent] = family
	}
	return family
}
