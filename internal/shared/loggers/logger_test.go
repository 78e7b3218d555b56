package loggers

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NoError(t, closer.Close())
}

func TestNew_WritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "analyzer.log")
	logger, closer, err := New("info", path)
	require.NoError(t, err)

	logger.Debug().Msg("dropped")
	logger.Info().Str(FieldReportDate, "2017-06-30").Msg("report generated")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "report generated", record["message"])
	assert.Equal(t, "2017-06-30", record[FieldReportDate])
	assert.Contains(t, record, "time")
	assert.Contains(t, record, "caller")
}

func TestNew_UnwritableFile(t *testing.T) {
	t.Parallel()

	_, _, err := New("info", filepath.Join(t.TempDir(), "missing", "analyzer.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open log file")
}

func TestCtx_RoundTrip(t *testing.T) {
	t.Parallel()

	logger, _, err := New("debug", "")
	require.NoError(t, err)
	ctx := logger.With().Str(FieldRunID, "run-1").Logger().WithContext(context.Background())

	assert.NotNil(t, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()))
}
