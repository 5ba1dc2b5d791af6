package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

// Common errors
var (
	ErrEmptyLogDirectory = errors.New("log directory cannot be empty")
)

// File permission constants
const (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// GenerateRunID generates a new ULID for run identification. ULIDs are
// lexicographically sortable by creation time, so per-run log files list in
// chronological order.
func GenerateRunID() string {
	return ulid.Make().String()
}

// Config holds the settings for logger setup.
type Config struct {
	Level  slog.Level
	LogDir string // optional; when set, a per-run JSON log file is written
	RunID  string
}

// Setup initializes the process-wide slog default logger. It must be called
// once during startup, before any logging occurs. Console output goes to
// stderr as text; when cfg.LogDir is set, a machine-readable JSON log named
// <host>_<timestamp>_<runid>.json is written alongside it.
func Setup(cfg Config) error {
	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level}),
	}

	if cfg.LogDir != "" {
		logFile, err := openRunLogFile(cfg.LogDir, cfg.RunID)
		if err != nil {
			return err
		}
		handlers = append(handlers, slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.Level}))
	}

	logger := slog.New(NewMultiHandler(handlers...))
	slog.SetDefault(logger.With(slog.String("run_id", cfg.RunID)))
	return nil
}

// openRunLogFile creates the log directory if needed and opens the
// auto-named per-run log file.
func openRunLogFile(dir, runID string) (*os.File, error) {
	if dir == "" {
		return nil, ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	timestamp := time.Now().Format("20060102T150405Z")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", hostname, timestamp, runID))

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}
	return file, nil
}
