// Package logger configures the application slog logger and provides helpers for request scoped logging.
//
// dev and test environments use a coloured text handler (tint), prod and staging use JSON.
//
// Handlers should use ContextRequestLogger to get a logger that includes the request id,
// and ContextWithLogAttrs to add attributes to the single log line written when the request completes.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// LevelNone is above every level used by the application and silences all output.
const LevelNone = slog.Level(12)

type contextKey int

const (
	requestLoggerKey contextKey = iota
	logAttrsKey
)

// InitLogger creates the application logger and installs it as the slog default.
func InitLogger(level slog.Level, environment string) *slog.Logger {
	var handler slog.Handler

	switch environment {
	case "prod", "staging":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	default:
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// ParseLogLevel converts a LOG_LEVEL string to a slog.Level.
// "none" disables logging. Unknown values default to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		return LevelNone
	}

	// accepts the slog text form, e.g "ERROR+4" (the String() value of LevelNone)
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ContextWithRequestLogger stores a request scoped logger in the context.
func ContextWithRequestLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, l)
}

// ContextRequestLogger returns the request scoped logger, or the default logger when none was set.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(requestLoggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// logAttrs collects attributes that are added to the request completion log line.
type logAttrs struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// ContextWithLogAttrs adds attributes to the final request log entry.
//
// When the context was prepared by RequestLogging the attributes are added in place and
// the same context is returned, so callers do not need to keep the returned value.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if holder, ok := ctx.Value(logAttrsKey).(*logAttrs); ok {
		holder.mu.Lock()
		holder.attrs = append(holder.attrs, attrs...)
		holder.mu.Unlock()
		return ctx
	}
	return context.WithValue(ctx, logAttrsKey, &logAttrs{attrs: attrs})
}

// contextLogAttrs returns a copy of the attributes collected for the request.
func contextLogAttrs(ctx context.Context) []slog.Attr {
	holder, ok := ctx.Value(logAttrsKey).(*logAttrs)
	if !ok {
		return nil
	}
	holder.mu.Lock()
	defer holder.mu.Unlock()
	out := make([]slog.Attr, len(holder.attrs))
	copy(out, holder.attrs)
	return out
}
