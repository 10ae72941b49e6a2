// Package log provides a leveled logging interface.
// The log messages are intended to be user-facing,
// similar to the standard library's log package.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Level specifies the level of logging.
type Level = slog.Level

// Supported log levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Error = slog.LevelError
)

// Logger logs messages to a writer.
type Logger struct{ *slog.Logger }

// New builds a logger that writes to the given writer.
// The logger defaults to level Info.
func New(w io.Writer) *Logger {
	return &Logger{slog.New(&handler{W: w, Level: Info})}
}

// WithLevel builds a new logger that logs messages at or above the given
// level. The original logger is left unchanged.
func (l *Logger) WithLevel(lvl Level) *Logger {
	out := *l
	if h, ok := l.Handler().(*handler); ok {
		out.Logger = slog.New(h.withLevel(lvl))
	}
	return &out
}

// WithName builds a new logger with the provided name. The returned logger is
// safe to use concurrently with this logger.
func (l *Logger) WithName(name string) *Logger {
	out := *l
	out.Logger = l.WithGroup(name)
	return &out
}

// Logf logs a printf-style message at the given level.
func (l *Logger) Logf(lvl Level, format string, args ...interface{}) {
	l.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

// Debugf logs a printf-style message at level Debug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Logf(Debug, format, args...)
}

// Infof logs a printf-style message at level Info.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Logf(Info, format, args...)
}

// Errorf logs a printf-style message at level Error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Logf(Error, format, args...)
}
