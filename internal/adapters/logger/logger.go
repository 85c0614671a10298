// Package logger implements ports.Logger on top of log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/margo/internal/core/domain"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger implements ports.Logger. Console output is pretty-printed unless JSON mode
// is enabled; when a log file is configured every record is also written to it as JSON.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	output   io.Writer
	file     io.WriteCloser
}

// New creates a Logger writing pretty output to stderr.
func New() *Logger {
	l := &Logger{output: os.Stderr}
	l.rebuild()
	return l
}

var _ ports.Logger = (*Logger)(nil)

// SetOutput replaces the console destination. A nil writer selects os.Stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches the console between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// Configure applies the log section of the run configuration.
func (l *Logger) Configure(cfg domain.LogConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = cfg.JSON

	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), domain.DirPerm); err != nil {
			l.rebuild()
			return domain.NewError(domain.ErrLogSetupFailed, zerr.With(err, "path", cfg.File))
		}
		l.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
	}

	l.rebuild()
	return nil
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.rebuild()
	return err
}

// rebuild must be called with mu held.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	w := l.output
	if w == nil {
		w = os.Stderr
	}

	var console slog.Handler
	if l.jsonMode {
		console = slog.NewJSONHandler(w, opts)
	} else {
		console = NewPrettyHandler(w, opts)
	}

	if l.file == nil {
		l.logger = slog.New(console)
		return
	}
	l.logger = slog.New(fanout{console, slog.NewJSONHandler(l.file, opts)})
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. In pretty mode the error chain is rendered as a cause list.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}
