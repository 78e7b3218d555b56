package analyzers

import (
	"context"
	"errors"
	"time"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/locators"
	"log-analyzer/internal/models"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/rankers"
	"log-analyzer/internal/readers"
	"log-analyzer/internal/shared/loggers"
	"log-analyzer/internal/shared/metrics"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/shared/ulid"
	"log-analyzer/internal/stores"
)

// clientTableSize bounds the client family table of a report.
const clientTableSize = 10

// AnalysisService runs the whole pipeline once: locate the newest log, skip it when its report
// exists, otherwise parse, aggregate, rank and publish the report.
//
// Successful runs end in one of the outcomes of models.RunResult. Failures are
// *svcerrors.ServiceError values:
//   - ANL_1000 (unprocessable) when too few lines parsed; no report is written
//   - ANL_9000, ANL_9001, ANL_9002 (internal) for locate, read and report store failures
//
//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	Analyze(ctx context.Context) (*models.RunResult, error)
}

type analysisService struct {
	locator       locators.LogLocator
	reader        readers.LogReader
	parser        parsers.LineParser
	aggregator    aggregators.Aggregator
	reportBuilder rankers.ReportBuilder
	reportStore   stores.ReportStore
	reportSize    int
	now           func() time.Time
}

func NewAnalysisService(
	locator locators.LogLocator,
	reader readers.LogReader,
	parser parsers.LineParser,
	aggregator aggregators.Aggregator,
	reportBuilder rankers.ReportBuilder,
	reportStore stores.ReportStore,
	reportSize int,
) AnalysisService {
	return &analysisService{
		locator:       locator,
		reader:        reader,
		parser:        parser,
		aggregator:    aggregator,
		reportBuilder: reportBuilder,
		reportStore:   reportStore,
		reportSize:    reportSize,
		now:           time.Now,
	}
}

func (s *analysisService) Analyze(ctx context.Context) (*models.RunResult, error) {
	runID := ulid.NewULID()
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldRunID, runID).Logger()
	ctx = logger.WithContext(ctx)
	logger.Info().Msg("analysis started")

	result, svcErr := s.analyze(ctx, runID)
	if svcErr != nil {
		metricRunTotal.WithLabelValues(metricOutcomeFailed, svcErr.Code).Inc()
		event := logger.Error()
		if !svcErr.IsInternalError() {
			event = logger.Warn()
		}
		event.Err(svcErr.Cause).Str(loggers.FieldErrorCode, svcErr.Code).Msg(svcErr.Message)
		return nil, svcErr
	}

	metricRunTotal.WithLabelValues(string(result.Outcome), metrics.ValueNoError).Inc()
	logger.Info().Str(loggers.FieldOutcome, string(result.Outcome)).Str(loggers.FieldReportKey, result.ReportKey).Msg("analysis finished")
	return result, nil
}

func (s *analysisService) analyze(ctx context.Context, runID string) (*models.RunResult, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	logFile, found, err := s.locator.FindLatest(ctx)
	if err != nil {
		return nil, errInternalLogLocateFailed(err)
	}
	if !found {
		logger.Info().Msg("no log to analyze")
		return &models.RunResult{RunID: runID, Outcome: models.OutcomeNoLogFound}, nil
	}

	date := logFile.Date
	result := &models.RunResult{
		RunID:      runID,
		LogFile:    logFile.Path,
		ReportDate: &date,
		ReportKey:  models.ReportKey(date),
	}
	logger.Info().Str(loggers.FieldLogPath, logFile.Path).Str(loggers.FieldReportDate, date.String()).Msg("log located")

	exists, err := s.reportStore.Exists(ctx, date)
	if err != nil {
		return nil, errInternalReportStoreFailed(err)
	}
	if exists {
		logger.Info().Str(loggers.FieldReportKey, result.ReportKey).Msg("report already exists, nothing to do")
		result.Outcome = models.OutcomeReportAlreadyExists
		return result, nil
	}

	aggregation, svcErr := s.aggregate(ctx, logFile)
	if svcErr != nil {
		return nil, svcErr
	}
	result.TotalRecords = aggregation.TotalRecords
	result.ParsedRecords = aggregation.ParsedRecords

	rows := s.reportBuilder.Build(aggregation, s.reportSize)
	if len(rows) > 0 {
		first := rows[0]
		logger.Debug().
			Str("url", first.URL).
			Int64("count", first.Count).
			Float64("time_sum", first.TimeSum).
			Float64("time_perc", first.TimePerc).
			Float64("time_med", first.TimeMed).
			Msg("top report row")
	}

	artifact := &models.ReportArtifact{
		Date:          date,
		Rows:          rows,
		Clients:       s.reportBuilder.BuildClients(aggregation, clientTableSize),
		SourceLog:     logFile.Path,
		TotalRecords:  aggregation.TotalRecords,
		ParsedRecords: aggregation.ParsedRecords,
		TotalTime:     aggregation.TotalTime,
		GeneratedAt:   s.now().UTC(),
	}
	if _, err := s.reportStore.Save(ctx, artifact); err != nil {
		if errors.Is(err, stores.ErrReportAlreadyExists) {
			logger.Warn().Str(loggers.FieldReportKey, result.ReportKey).Msg("report published concurrently by another run")
			result.Outcome = models.OutcomeReportAlreadyExists
			return result, nil
		}
		return nil, errInternalReportStoreFailed(err)
	}

	result.Outcome = models.OutcomeReportGenerated
	result.Rows = rows
	return result, nil
}

func (s *analysisService) aggregate(ctx context.Context, logFile models.LogFile) (*models.AggregationResult, *svcerrors.ServiceError) {
	rc, err := s.reader.Open(ctx, logFile)
	if err != nil {
		return nil, errInternalLogReadFailed(err)
	}
	defer rc.Close()

	aggregation, err := s.aggregator.Accumulate(ctx, parsers.NewRecordScanner(rc, s.parser))
	if err != nil {
		if errors.Is(err, aggregators.ErrLowParseQuality) {
			return nil, errLowParseQuality(err)
		}
		return nil, errInternalLogReadFailed(err)
	}
	return aggregation, nil
}
