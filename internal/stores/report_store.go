package stores

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"cloud.google.com/go/civil"

	"log-analyzer/internal/models"
	"log-analyzer/internal/renderers"
	"log-analyzer/internal/shared/filestorages"
)

var (
	ErrReportAlreadyExists = errors.New("report already exists")
	ErrReportNotFound      = errors.New("report not found")
)

// ReportStore keeps one rendered report per date. Save publishes with an atomic
// "create-if-not-exists", so a report is never overwritten and never seen half written.
//
// Example scenario:
//   - Run A and run B both find nginx-access-ui.log-20170630 and see no report for 2017-06-30
//   - Both parse the log; run A's Save publishes report-2017.06.30.html
//   - Run B's Save fails with ErrReportAlreadyExists and the report of run A is kept
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Exists(ctx context.Context, date civil.Date) (bool, error)
	// Save renders and publishes artifact, returning its storage key.
	Save(ctx context.Context, artifact *models.ReportArtifact) (string, error)
	// List returns the dates that have a report, newest first.
	List(ctx context.Context) ([]civil.Date, error)
	Open(ctx context.Context, date civil.Date) (io.ReadCloser, error)
}

type reportStore struct {
	fileStorage filestorages.FileStorage
	renderer    renderers.HTMLRenderer
}

func NewReportStore(fileStorage filestorages.FileStorage, renderer renderers.HTMLRenderer) ReportStore {
	return &reportStore{fileStorage: fileStorage, renderer: renderer}
}

func (s *reportStore) Exists(ctx context.Context, date civil.Date) (bool, error) {
	exists, err := s.fileStorage.Exists(ctx, models.ReportKey(date))
	if err != nil {
		return false, fmt.Errorf("failed to check report for %s: %w", date, err)
	}
	return exists, nil
}

func (s *reportStore) Save(ctx context.Context, artifact *models.ReportArtifact) (string, error) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, artifact); err != nil {
		return "", err
	}

	key := models.ReportKey(artifact.Date)
	result, err := s.fileStorage.Put(ctx, key, &buf)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return "", ErrReportAlreadyExists
		}
		return "", fmt.Errorf("failed to put report %s: %w", key, err)
	}

	metricReportSavedTotal.Inc()
	metricReportSizeBytes.Observe(float64(result.Size))
	return key, nil
}

func (s *reportStore) List(ctx context.Context) ([]civil.Date, error) {
	names, err := s.fileStorage.List(ctx)
	if err != nil {
		// the report directory only appears with the first report
		if errors.Is(err, fs.ErrNotExist) {
			return []civil.Date{}, nil
		}
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	dates := make([]civil.Date, 0, len(names))
	for _, name := range names {
		if date, ok := models.ParseReportKey(name); ok {
			dates = append(dates, date)
		}
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})
	return dates, nil
}

func (s *reportStore) Open(ctx context.Context, date civil.Date) (io.ReadCloser, error) {
	rc, err := s.fileStorage.Get(ctx, models.ReportKey(date))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to open report for %s: %w", date, err)
	}
	return rc, nil
}
