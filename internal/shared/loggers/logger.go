package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a wrapper around zerolog.Logger for convenience.
type Logger = zerolog.Logger

// New creates a new zerolog logger based on the provided log level string.
// When file is not empty, records are appended to it instead of stdout; the returned closer
// releases the file and is a no-op otherwise.
// Returns an error if the log level string cannot be parsed or the file cannot be opened.
func New(level string, file string) (Logger, io.Closer, error) {
	zerologLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file %q: %w", file, err)
		}
		out = f
		closer = f
	}

	// Create logger with JSON output, timestamp, and specified level
	logger := zerolog.New(out).
		Level(zerologLevel).
		With().
		Timestamp().
		Caller().
		Logger()

	return logger, closer, nil
}

// Ctx extracts a logger from the context.
// Returns a disabled logger if no logger is found in context.
var Ctx = func(ctx context.Context) *Logger {
	return zerolog.Ctx(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
