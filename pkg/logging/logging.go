// Package logging writes ninety's structured log to <data>/logs/ninety.log
// so the TUI keeps the terminal to itself.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileName is the log file inside the logs directory.
const FileName = "ninety.log"

// Logger is a zerolog logger backed by an append-only file.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// New opens (or creates) logsDir/ninety.log and returns a logger at level.
func New(logsDir string, level zerolog.Level) (*Logger, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logsDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{Logger: newLogger(f, level), file: f}, nil
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", "ninety").Logger()
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
