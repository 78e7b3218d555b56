package analyzers_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"log-analyzer/internal/aggregators"
	"log-analyzer/internal/analyzers"
	"log-analyzer/internal/classifiers"
	"log-analyzer/internal/locators"
	locatormocks "log-analyzer/internal/locators/mocks"
	"log-analyzer/internal/models"
	"log-analyzer/internal/parsers"
	"log-analyzer/internal/rankers"
	"log-analyzer/internal/readers"
	readermocks "log-analyzer/internal/readers/mocks"
	"log-analyzer/internal/renderers"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/svcerrors"
	"log-analyzer/internal/stores"
	storemocks "log-analyzer/internal/stores/mocks"
)

const (
	lineBanner = `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" 200 927 "-" "Lynx/2.8.8dev.9 libwww-FM/2.14 SSL-MM/1.4.1 GNUTLS/2.10.5" "-" "1498697422-2190034393-4708-9752759" "dc7161be3" `
	lineGroup  = `1.99.174.176 3b81f63526fa8  - [29/Jun/2017:03:50:22 +0300] "GET /api/1/photogenic_banners/list/?server_name=WIN7RB4 HTTP/1.1" 200 12 "-" "Python-urllib/2.7" "-" "1498697422-32900793-4708-9752770" "-" `
	lineBroken = `1.196.116.32 -  - [29/Jun/2017:03:50:22 +0300] "-" 400 0 "-" "-" "-" "-" "-" 0.001`
)

var logDate = civil.Date{Year: 2017, Month: 6, Day: 30}

// tenLines has 8 parsable lines for 2 URLs: banner 5 x, group 3 x.
func tenLines() string {
	lines := []string{
		lineBanner + "0.1", lineGroup + "1.0", lineBanner + "0.2", lineBroken,
		lineBanner + "0.3", lineGroup + "2.0", lineBanner + "0.4", "garbage",
		lineBanner + "0.5", lineGroup + "3.0",
	}
	return strings.Join(lines, "\n") + "\n"
}

func logFile() models.LogFile {
	return models.LogFile{
		Name:  "nginx-access-ui.log-20170630",
		Path:  "/logs/nginx-access-ui.log-20170630",
		Date:  logDate,
		Codec: compressions.None,
	}
}

func newService(locator locators.LogLocator, reader readers.LogReader, store stores.ReportStore, threshold float64) analyzers.AnalysisService {
	return analyzers.NewAnalysisService(
		locator,
		reader,
		parsers.NewLineParser(),
		aggregators.NewAggregator(threshold, classifiers.NewClientClassifier()),
		rankers.NewReportBuilder(),
		store,
		1000,
	)
}

func TestAnalyze_NoLogFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locator := locatormocks.NewMockLogLocator(ctrl)
	reader := readermocks.NewMockLogReader(ctrl)
	store := storemocks.NewMockReportStore(ctrl)
	locator.EXPECT().FindLatest(gomock.Any()).Return(models.LogFile{}, false, nil)

	result, err := newService(locator, reader, store, 0.333).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeNoLogFound, result.Outcome)
	assert.NotEmpty(t, result.RunID)
	assert.Nil(t, result.ReportDate)
}

func TestAnalyze_ReportAlreadyExists_SkipsParsing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locator := locatormocks.NewMockLogLocator(ctrl)
	reader := readermocks.NewMockLogReader(ctrl)
	store := storemocks.NewMockReportStore(ctrl)
	locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
	store.EXPECT().Exists(gomock.Any(), logDate).Return(true, nil)
	reader.EXPECT().Open(gomock.Any(), gomock.Any()).Times(0)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	result, err := newService(locator, reader, store, 0.333).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReportAlreadyExists, result.Outcome)
	assert.Equal(t, "report-2017.06.30.html", result.ReportKey)
	require.NotNil(t, result.ReportDate)
	assert.Equal(t, logDate, *result.ReportDate)
}

func TestAnalyze_ReportGenerated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locator := locatormocks.NewMockLogLocator(ctrl)
	reader := readermocks.NewMockLogReader(ctrl)
	store := storemocks.NewMockReportStore(ctrl)
	locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
	store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
	reader.EXPECT().Open(gomock.Any(), logFile()).Return(io.NopCloser(strings.NewReader(tenLines())), nil)

	var saved *models.ReportArtifact
	store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, artifact *models.ReportArtifact) (string, error) {
		saved = artifact
		return models.ReportKey(artifact.Date), nil
	})

	result, err := newService(locator, reader, store, 0.333).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReportGenerated, result.Outcome)
	assert.Equal(t, int64(10), result.TotalRecords)
	assert.Equal(t, int64(8), result.ParsedRecords)

	require.NotNil(t, saved)
	assert.Equal(t, logDate, saved.Date)
	assert.Equal(t, "/logs/nginx-access-ui.log-20170630", saved.SourceLog)
	assert.False(t, saved.GeneratedAt.IsZero())

	require.Len(t, saved.Rows, 2)
	assert.Equal(t, "/api/1/photogenic_banners/list/?server_name=WIN7RB4", saved.Rows[0].URL)
	assert.Equal(t, "/api/v2/banner/25019354", saved.Rows[1].URL)
	assert.Equal(t, int64(3), saved.Rows[0].Count)
	assert.Equal(t, int64(5), saved.Rows[1].Count)
	assert.Equal(t, 6.0, saved.Rows[0].TimeSum)
	assert.Equal(t, 2.0, saved.Rows[0].TimeMed)
	assert.Equal(t, 0.3, saved.Rows[1].TimeMed)

	count, countPerc := int64(0), 0.0
	for _, row := range saved.Rows {
		count += row.Count
		countPerc += row.CountPerc
	}
	assert.Equal(t, int64(8), count)
	assert.InDelta(t, 100, countPerc, 0.01)
	assert.Equal(t, saved.Rows, result.Rows)

	require.Len(t, saved.Clients, 2)
	assert.Equal(t, int64(5), saved.Clients[0].Count)
	assert.Equal(t, 62.5, saved.Clients[0].CountPerc)
	assert.Equal(t, int64(3), saved.Clients[1].Count)
}

func TestAnalyze_LowParseQuality_WritesNothing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locator := locatormocks.NewMockLogLocator(ctrl)
	reader := readermocks.NewMockLogReader(ctrl)
	store := storemocks.NewMockReportStore(ctrl)
	locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
	store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
	reader.EXPECT().Open(gomock.Any(), gomock.Any()).Return(io.NopCloser(strings.NewReader(tenLines())), nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	result, err := newService(locator, reader, store, 0.9).Analyze(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "ANL_1000", svcErr.Code)
	assert.Equal(t, "unprocessable", svcErr.Category)
	assert.Equal(t, 422, svcErr.HttpStatusCode)
	assert.ErrorIs(t, err, aggregators.ErrLowParseQuality)
}

func TestAnalyze_ConcurrentPublishIsAlreadyExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locator := locatormocks.NewMockLogLocator(ctrl)
	reader := readermocks.NewMockLogReader(ctrl)
	store := storemocks.NewMockReportStore(ctrl)
	locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
	store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
	reader.EXPECT().Open(gomock.Any(), gomock.Any()).Return(io.NopCloser(strings.NewReader(tenLines())), nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return("", stores.ErrReportAlreadyExists)

	result, err := newService(locator, reader, store, 0.333).Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReportAlreadyExists, result.Outcome)
	assert.Nil(t, result.Rows)
}

func TestAnalyze_InternalErrors(t *testing.T) {
	t.Parallel()

	ioErr := errors.New("input/output error")

	tests := []struct {
		name     string
		setup    func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore)
		wantCode string
	}{
		{
			name: "locate failure",
			setup: func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore) {
				locator.EXPECT().FindLatest(gomock.Any()).Return(models.LogFile{}, false, ioErr)
			},
			wantCode: "ANL_9000",
		},
		{
			name: "exists check failure",
			setup: func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore) {
				locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
				store.EXPECT().Exists(gomock.Any(), logDate).Return(false, ioErr)
			},
			wantCode: "ANL_9002",
		},
		{
			name: "open failure",
			setup: func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore) {
				locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
				store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
				reader.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, ioErr)
			},
			wantCode: "ANL_9001",
		},
		{
			name: "read failure mid stream",
			setup: func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore) {
				locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
				store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
				reader.EXPECT().Open(gomock.Any(), gomock.Any()).Return(io.NopCloser(io.MultiReader(strings.NewReader(tenLines()), &errReader{err: ioErr})), nil)
			},
			wantCode: "ANL_9001",
		},
		{
			name: "save failure",
			setup: func(locator *locatormocks.MockLogLocator, reader *readermocks.MockLogReader, store *storemocks.MockReportStore) {
				locator.EXPECT().FindLatest(gomock.Any()).Return(logFile(), true, nil)
				store.EXPECT().Exists(gomock.Any(), logDate).Return(false, nil)
				reader.EXPECT().Open(gomock.Any(), gomock.Any()).Return(io.NopCloser(strings.NewReader(tenLines())), nil)
				store.EXPECT().Save(gomock.Any(), gomock.Any()).Return("", ioErr)
			},
			wantCode: "ANL_9002",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			locator := locatormocks.NewMockLogLocator(ctrl)
			reader := readermocks.NewMockLogReader(ctrl)
			store := storemocks.NewMockReportStore(ctrl)
			tt.setup(locator, reader, store)

			result, err := newService(locator, reader, store, 0.333).Analyze(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)

			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok, "expected ServiceError")
			assert.Equal(t, tt.wantCode, svcErr.Code)
			assert.True(t, svcErr.IsInternalError())
			assert.ErrorIs(t, err, ioErr)
		})
	}
}

type errReader struct {
	err error
}

func (r *errReader) Read([]byte) (int, error) {
	return 0, r.err
}

// TestAnalyze_OnDisk runs the pipeline against real directories: a second run finds the report
// and leaves it alone.
func TestAnalyze_OnDisk(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	reportDir := filepath.Join(t.TempDir(), "reports")
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "nginx-access-ui.log-20170629"), []byte(tenLines()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "nginx-access-ui.log-20170630"), []byte(tenLines()), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(logDir, "nginx-access-ui.log-20170701.bz2"), []byte(tenLines()), 0o644))

	logStorage, err := filestorages.NewFileStorage(logDir)
	require.NoError(t, err)
	reportStorage, err := filestorages.NewFileStorage(reportDir)
	require.NoError(t, err)

	service := newService(
		locators.NewLogLocator(logStorage),
		readers.NewLogReader(logStorage),
		stores.NewReportStore(reportStorage, renderers.NewHTMLRenderer()),
		0.333,
	)

	first, err := service.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReportGenerated, first.Outcome)
	assert.Equal(t, "report-2017.06.30.html", first.ReportKey)

	info, err := os.Stat(filepath.Join(reportDir, "report-2017.06.30.html"))
	require.NoError(t, err)

	second, err := service.Analyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeReportAlreadyExists, second.Outcome)
	assert.NotEqual(t, first.RunID, second.RunID)

	again, err := os.Stat(filepath.Join(reportDir, "report-2017.06.30.html"))
	require.NoError(t, err)
	assert.Equal(t, info.ModTime(), again.ModTime())
}
