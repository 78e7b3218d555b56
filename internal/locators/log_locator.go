package locators

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
)

// logNamePattern accepts nginx-access-ui.log-YYYYMMDD with an optional extension. Whether the
// extension is a supported compression is decided afterwards.
var logNamePattern = regexp.MustCompile(`^nginx-access-ui\.log-(?P<date>\d{8})(?P<ext>\.[A-Za-z0-9]+)?$`)

// LogLocator finds the rotated access log a report should be built from.
//
// Selection rules:
//   - only direct entries of the log directory are considered, names that do not match the
//     rotated log pattern are ignored
//   - names whose date is not a calendar date, or whose extension is not a supported
//     compression, are ignored
//   - the newest date wins; for the same date the plain file wins over compressed ones, and
//     compressed ones are ranked .gz, .zst, .br
//
//go:generate mockgen -source=log_locator.go -destination=./mocks/log_locator_mock.go -package=mocks
type LogLocator interface {
	// FindLatest returns the newest log. found is false when there is none, which is not an error.
	FindLatest(ctx context.Context) (logFile models.LogFile, found bool, err error)
}

type logLocator struct {
	logStorage filestorages.FileStorage
}

func NewLogLocator(logStorage filestorages.FileStorage) LogLocator {
	return &logLocator{logStorage: logStorage}
}

func (l *logLocator) FindLatest(ctx context.Context) (models.LogFile, bool, error) {
	logger := loggers.Ctx(ctx)

	names, err := l.logStorage.List(ctx)
	if err != nil {
		return models.LogFile{}, false, fmt.Errorf("failed to scan log directory: %w", err)
	}

	var latest models.LogFile
	found := false
	for _, name := range names {
		candidate, ok := l.candidate(name)
		if !ok {
			continue
		}
		if !found || isPreferred(candidate, latest) {
			latest = candidate
			found = true
		}
	}

	if !found {
		logger.Debug().Msgf("no rotated log among %d entries of %s", len(names), l.logStorage.Root())
		return models.LogFile{}, false, nil
	}

	metricLogFileLocatedTotal.WithLabelValues(latest.Codec.Label()).Inc()
	return latest, true, nil
}

func (l *logLocator) candidate(name string) (models.LogFile, bool) {
	match := logNamePattern.FindStringSubmatch(name)
	if match == nil {
		return models.LogFile{}, false
	}

	codec, ok := compressions.FromExtension(match[logNamePattern.SubexpIndex("ext")])
	if !ok {
		metricLogFileSkippedTotal.WithLabelValues(skipReasonUnsupportedCompression).Inc()
		return models.LogFile{}, false
	}

	date, err := models.ParseLogDate(match[logNamePattern.SubexpIndex("date")])
	if err != nil {
		metricLogFileSkippedTotal.WithLabelValues(skipReasonInvalidDate).Inc()
		return models.LogFile{}, false
	}

	return models.LogFile{
		Name:  name,
		Path:  filepath.Join(l.logStorage.Root(), name),
		Date:  date,
		Codec: codec,
	}, true
}

// isPreferred reports whether a should be picked over b.
func isPreferred(a, b models.LogFile) bool {
	if a.Date != b.Date {
		return a.Date.After(b.Date)
	}
	return a.Codec.Rank() < b.Codec.Rank()
}
