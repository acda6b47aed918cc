package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Logger defines the common logging interface used throughout the application.
// It separates internal (debug) logs from user-facing messages: the hook must
// keep stdout reserved for its JSON response, so user-facing output is written
// to the configured message writer (stderr by default for the hook binary).
type Logger interface {
	// Info logs an informational message for debugging purposes.
	// These messages are only written to the log file.
	Info(format string, args ...interface{})

	// Warning logs a warning message for debugging purposes.
	// Shown to the user only in verbose mode.
	Warning(format string, args ...interface{})

	// Error logs an error message. Always shown to the user.
	Error(format string, args ...interface{})

	// InfoToUser logs an informational message intended for users,
	// regardless of verbosity.
	InfoToUser(format string, args ...interface{})

	// WarningToUser logs a warning message intended for users,
	// regardless of verbosity.
	WarningToUser(format string, args ...interface{})

	// Success logs a success message to the user.
	Success(format string, args ...interface{})

	// StatusMessage logs a status message to the user without writing it
	// to the log file.
	StatusMessage(format string, args ...interface{})

	// Close ensures any buffered data is written and closes open log file
	// handles. Call before the process exits.
	Close() error
}

// DefaultLogger provides structured logging capability and implements the
// Logger interface. File logging goes through slog's text handler; user
// messages go to the message/error writers directly.
type DefaultLogger struct {
	mu      sync.Mutex
	logger  *slog.Logger
	enabled bool
	logFile string
	verbose bool
	msgOut  io.Writer
	errOut  io.Writer
	file    *os.File
}

// New creates a new Logger instance. User-facing messages are written to
// stderr so that callers piping the hook's stdout see only the JSON response.
func New(enabled bool, logFile string, verbose bool) Logger {
	return NewWithOutput(enabled, logFile, verbose, os.Stderr, os.Stderr)
}

// NewWithOutput creates a DefaultLogger with custom output writers
func NewWithOutput(enabled bool, logFile string, verbose bool, msgOut, errOut io.Writer) *DefaultLogger {
	var logger *slog.Logger

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	var file *os.File

	if enabled {
		logDir := filepath.Dir(logFile)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0755); err != nil {
				_, _ = fmt.Fprintf(errOut, "failed to create log directory: %v\n", err)
			}
		}

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			file = f
			logger = slog.New(slog.NewTextHandler(f, opts))
			logger.Info("autocommit debug logging started")
		} else {
			// Fallback to stderr
			logger = slog.New(slog.NewTextHandler(errOut, opts))
			_, _ = fmt.Fprintf(errOut, "failed to open log file: %v, using stderr instead\n", err)
		}
	} else {
		logger = slog.New(slog.NewTextHandler(io.Discard, opts))
	}

	return &DefaultLogger{
		logger:  logger,
		enabled: enabled,
		logFile: logFile,
		verbose: verbose,
		msgOut:  msgOut,
		errOut:  errOut,
		file:    file,
	}
}

// Info logs an informational message (file only)
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}

	l.logger.Info(fmt.Sprintf(format, args...))
}

// InfoToUser logs an informational message to both file and the message writer
func (l *DefaultLogger) InfoToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	_, _ = fmt.Fprintf(l.msgOut, "%s\n", msg)
}

// Success logs a success message to both file and the message writer
func (l *DefaultLogger) Success(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Info(msg)
	}

	_, _ = fmt.Fprintf(l.msgOut, "✅ %s\n", msg)
}

// Warning logs a warning message
func (l *DefaultLogger) Warning(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	if l.verbose {
		_, _ = fmt.Fprintf(l.msgOut, "⚠️  %s\n", msg)
	}
}

// WarningToUser logs a warning message to both file and the message writer
func (l *DefaultLogger) WarningToUser(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Warn(msg)
	}

	_, _ = fmt.Fprintf(l.msgOut, "⚠️  %s\n", msg)
}

// Error logs an error message
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := fmt.Sprintf(format, args...)

	if l.enabled {
		l.logger.Error(msg)
	}

	// Always show errors to the user regardless of debug status
	_, _ = fmt.Fprintf(l.errOut, "❌ %s\n", msg)
}

// StatusMessage prints a status message to the message writer only (no logging)
func (l *DefaultLogger) StatusMessage(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprintf(l.msgOut, format+"\n", args...)
}

// Close ensures any buffered data is written and closes open log file handles
func (l *DefaultLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		if err := l.file.Sync(); err != nil {
			return err
		}
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// SetMessageWriter sets a custom writer for user-facing messages only.
// This does not affect where structured log messages from slog are directed.
// Primarily intended for testing.
func (l *DefaultLogger) SetMessageWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgOut = w
}

// SetErrorWriter sets a custom writer for user-facing error messages only.
// Primarily intended for testing.
func (l *DefaultLogger) SetErrorWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errOut = w
}
