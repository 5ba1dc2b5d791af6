package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	assert.Len(t, id, 26, "ULIDs are 26 characters in Crockford base32")

	other := GenerateRunID()
	assert.NotEqual(t, id, other)
}

func TestMultiHandler_DispatchesToAllHandlers(t *testing.T) {
	var bufA, bufB bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&bufA, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&bufB, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(handler)

	logger.Info("closure resolved", slog.Int("binaries", 3))

	assert.Contains(t, bufA.String(), "closure resolved")
	assert.Contains(t, bufA.String(), "binaries=3")
	assert.Contains(t, bufB.String(), `"binaries":3`)
}

func TestMultiHandler_RespectsPerHandlerLevels(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(handler)

	logger.Debug("only for the debug handler")

	assert.Contains(t, debugBuf.String(), "only for the debug handler")
	assert.Empty(t, warnBuf.String())
}

func TestMultiHandler_Enabled(t *testing.T) {
	handler := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)

	ctx := context.Background()
	assert.True(t, handler.Enabled(ctx, slog.LevelError))
	assert.False(t, handler.Enabled(ctx, slog.LevelInfo))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMultiHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	logger := slog.New(handler.WithAttrs([]slog.Attr{slog.String("run_id", "01HTEST")}))

	logger.Info("hello")
	assert.Contains(t, buf.String(), "run_id=01HTEST")
}

func TestOpenRunLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	runID := GenerateRunID()

	file, err := openRunLogFile(dir, runID)
	require.NoError(t, err)
	t.Cleanup(func() { _ = file.Close() })

	name := filepath.Base(file.Name())
	assert.True(t, strings.HasSuffix(name, runID+".json"),
		"log file %q should end with the run id", name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenRunLogFile_EmptyDir(t *testing.T) {
	_, err := openRunLogFile("", "01HTEST")
	assert.ErrorIs(t, err, ErrEmptyLogDirectory)
}
