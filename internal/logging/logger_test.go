package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamtable/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerWithPath_JSONToStderr(t *testing.T) {
	var buf bytes.Buffer
	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "debug",
		Format: logging.FormatJSON,
		Output: logging.OutputStderr,
		Stderr: &buf,
	})
	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)

	log := logging.ComponentLogger(result.Logger, "pager")
	log.Debug().Int("rows", 3).Msg("page written")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "pager", entry["component"])
	assert.Equal(t, "page written", entry["message"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "streamtable.log")
	result := logging.NewLoggerWithPath(logging.Config{
		Level:  "info",
		Output: logging.OutputFile,
		File:   path,
	})
	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("hello")
	require.NoError(t, result.Close())
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewLoggerWithPath_FileFallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	var buf bytes.Buffer
	result := logging.NewLoggerWithPath(logging.Config{
		Output: logging.OutputFile,
		File:   filepath.Join(blocker, "app.log"),
		Format: logging.FormatJSON,
		Stderr: &buf,
	})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)

	result.Logger.Warn().Msg("still logging")
	assert.Contains(t, buf.String(), "still logging")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	id := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, id, 26)

	ctx = logging.ContextWithTraceID(ctx, id)
	assert.Equal(t, id, logging.TraceIDFromContext(ctx))
	assert.Equal(t, id, logging.GetOrGenerateTraceID(ctx))
}

func TestTraceHook(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewLogger(logging.Config{Format: logging.FormatJSON, Stderr: &buf})

	ctx := logging.ContextWithTraceID(context.Background(), "01HTRACE")
	ctx = log.WithContext(ctx)

	logging.FromContext(ctx).Info().Ctx(ctx).Msg("with trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01HTRACE", entry["trace_id"])
}

func TestFromContext_NoLogger(t *testing.T) {
	log := logging.FromContext(context.Background())
	require.NotNil(t, log)
	log.Info().Msg("dropped")
}
