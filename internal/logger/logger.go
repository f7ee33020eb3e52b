// Package logger provides the structured logging used across the Yalle
// compiler.
//
// Library packages only log at debug level through the helpers below; the
// CLI decides what is shown by calling Init. Until Init is called every
// helper is a no-op.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logger configuration
type Config struct {
	Level     LogLevel
	Format    string // "text" or "json"
	Output    io.Writer
	AddSource bool
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init installs a logger built from cfg.
func Init(cfg Config) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(cfg.Level),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	mu.Lock()
	defaultLogger = slog.New(handler)
	mu.Unlock()
}

// Reset removes the installed logger, silencing every helper.
func Reset() {
	mu.Lock()
	defaultLogger = nil
	mu.Unlock()
}

// ParseLevel maps a level name to a LogLevel. Unknown names give LevelWarn.
func ParseLevel(name string) LogLevel {
	switch name {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func current() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	if l := current(); l != nil {
		l.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...any) {
	if l := current(); l != nil {
		l.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	if l := current(); l != nil {
		l.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if l := current(); l != nil {
		l.Error(msg, args...)
	}
}

// Compiler-specific logging helpers

// LogPhase logs the start of a compilation phase
func LogPhase(phase string) {
	Debug("Starting compilation phase", "phase", phase)
}

// LogPhaseComplete logs the completion of a compilation phase
func LogPhaseComplete(phase string, args ...any) {
	Debug("Completed compilation phase", append([]any{"phase", phase}, args...)...)
}

// LogOptimization logs optimization passes
func LogOptimization(pass string, changeCount int) {
	Debug("Optimization pass complete", "pass", pass, "changes", changeCount)
}

// LogUnused logs a declaration that is never referenced.
func LogUnused(kind, name string, line int) {
	Debug("Unused declaration", "kind", kind, "name", name, "line", line)
}

// LogError records a compilation error at debug level. The error itself is
// returned to the caller, which decides how to report it.
func LogError(phase string, line int, msg string) {
	Debug("Compilation error",
		"phase", phase,
		"line", line,
		"message", msg)
}
