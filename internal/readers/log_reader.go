package readers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"log-analyzer/internal/models"
	"log-analyzer/internal/shared/compressions"
	"log-analyzer/internal/shared/filestorages"
	"log-analyzer/internal/shared/loggers"
)

// LogReader opens located logs for a single forward pass. Compressed logs are decompressed on
// the fly, callers always read plain text.
//
//go:generate mockgen -source=log_reader.go -destination=./mocks/log_reader_mock.go -package=mocks
type LogReader interface {
	Open(ctx context.Context, logFile models.LogFile) (io.ReadCloser, error)
}

type logReader struct {
	logStorage filestorages.FileStorage
}

func NewLogReader(logStorage filestorages.FileStorage) LogReader {
	return &logReader{logStorage: logStorage}
}

func (r *logReader) Open(ctx context.Context, logFile models.LogFile) (io.ReadCloser, error) {
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldLogPath, logFile.Path).
		Msgf("opening log with codec %s", logFile.Codec.Label())

	file, err := r.logStorage.Get(ctx, logFile.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open log %q: %w", logFile.Path, err)
	}

	decoded, err := compressions.NewReader(logFile.Codec, file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to decode log %q: %w", logFile.Path, err)
	}

	return &stackedReadCloser{Reader: decoded, closers: []io.Closer{decoded, file}}, nil
}

// stackedReadCloser closes the decoder before the file underneath it.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
