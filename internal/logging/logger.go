package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	// Minimum level the handler emits; adjustable after init
	minLevel = new(slog.LevelVar)

	// Default logger instance
	logger *slog.Logger

	// Colors for different log levels
	infoColor  = color.New(color.FgGreen).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	errorColor = color.New(color.FgRed).SprintFunc()
	debugColor = color.New(color.FgCyan).SprintFunc()
)

// ColorTextHandler is a simple handler that adds colors to log output
type ColorTextHandler struct {
	w io.Writer
}

// NewColorTextHandler creates a new ColorTextHandler
func NewColorTextHandler(w io.Writer) *ColorTextHandler {
	return &ColorTextHandler{w: w}
}

// Handle handles the log record
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var levelText string
	switch r.Level {
	case slog.LevelDebug:
		levelText = debugColor("DEBUG")
	case slog.LevelInfo:
		levelText = infoColor("INFO")
	case slog.LevelWarn:
		levelText = warnColor("WARN")
	case slog.LevelError:
		levelText = errorColor("ERROR")
	default:
		levelText = r.Level.String()
	}

	var attrs string
	r.Attrs(func(a slog.Attr) bool {
		attrs += " " + a.Key + "=" + formatAttrValue(a.Value)
		return true
	})

	_, err := fmt.Fprintf(h.w, "%s %s%s\n", levelText, r.Message, attrs)
	return err
}

// formatAttrValue formats a slog.Value as a string
func formatAttrValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format("15:04:05")
	default:
		return fmt.Sprintf("%v", v.Any())
	}
}

// WithAttrs returns a new handler with the given attributes
func (h *ColorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

// WithGroup returns a new handler with the given group
func (h *ColorTextHandler) WithGroup(name string) slog.Handler {
	return h
}

// Enabled reports whether the handler handles records at the given level
func (h *ColorTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= minLevel.Level()
}

// InitWithLevel initializes the logger with a named level: trace, debug,
// info, warn, or error. Unknown names fall back to info.
func InitWithLevel(level string) {
	switch strings.ToLower(level) {
	case "trace", "debug":
		minLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		minLevel.Set(slog.LevelWarn)
	case "error":
		minLevel.Set(slog.LevelError)
	default:
		minLevel.Set(slog.LevelInfo)
	}

	logger = slog.New(NewColorTextHandler(os.Stderr))
	slog.SetDefault(logger)
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	logger = slog.New(NewColorTextHandler(w))
	slog.SetDefault(logger)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	slog.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	slog.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	slog.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	slog.Error(msg, args...)
}

// LogOperation runs fn, logging its duration and outcome under the
// operation name.
func LogOperation(operation string, fn func() error) error {
	start := time.Now()
	Debug("Operation started", "operation", operation)

	err := fn()
	if err != nil {
		Error("Operation failed", "operation", operation, "duration", time.Since(start), "error", err)
		return err
	}

	Debug("Operation completed", "operation", operation, "duration", time.Since(start))
	return nil
}
