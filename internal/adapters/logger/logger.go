// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.trai.ch/vpm/internal/core/ports"
)

// messager describes an error that can report its own message without the chain.
// zerr errors implement it; other errors fall back to Error().
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	level    *slog.LevelVar
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	l := &Logger{
		level:  &slog.LevelVar{},
		output: os.Stderr,
	}
	l.level.Set(slog.LevelInfo)
	l.logger = slog.New(l.newHandler(os.Stderr))
	return l
}

func (l *Logger) newHandler(w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(l.newHandler(w))
}

// SetJSON switches between JSON and pretty logging, keeping the output destination.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.newHandler(l.output))
}

// SetVerbose enables or disables debug messages.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.level.Set(slog.LevelDebug)
		return
	}
	l.level.Set(slog.LevelInfo)
}

// Debug logs a diagnostic message, shown only in verbose mode.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
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

// Error logs an error, unrolling zerr chains into a "Caused by" block.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorChain(collectMessages(err)))
}

// collectMessages walks the error chain. zerr layers contribute their own message;
// the first non-zerr error contributes its full text and ends the walk.
func collectMessages(err error) []string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		if msg := m.Message(); msg != "" {
			messages = append(messages, msg)
		}
		current = errors.Unwrap(current)
	}
	return messages
}

func formatErrorChain(messages []string) string {
	var lines []string
	for i, msg := range messages {
		parts := strings.Split(msg, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+parts[0])
			for _, p := range parts[1:] {
				lines = append(lines, "       "+p)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+parts[0])
		for _, p := range parts[1:] {
			lines = append(lines, "      "+p)
		}
	}
	return strings.Join(lines, "\n")
}
