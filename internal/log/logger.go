package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	once   sync.Once
	logger *slog.Logger
)

// Options controls how the process logger is built.
type Options struct {
	Level  string
	Format string // json (default) or text
	// File, when set, receives a copy of every record through a rotating writer.
	File string
}

// Setup initializes the global logger. Only the first call has any effect;
// the logger is read-only afterwards.
// logic: default to INFO. If level is invalid, fallback to INFO.
func Setup(opts Options) {
	once.Do(func() {
		logger = New(opts, os.Stdout)
		slog.SetDefault(logger)
	})
}

// New builds a logger writing to w (and to opts.File when set) without
// touching the global state.
func New(opts Options, w io.Writer) *slog.Logger {
	if opts.File != "" {
		w = io.MultiWriter(w, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		})
	}

	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, hopts)
	} else {
		handler = slog.NewJSONHandler(w, hopts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog.Level, falling back to INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Get returns the configured logger, or a default one if Setup hasn't been called.
func Get() *slog.Logger {
	if logger == nil {
		Setup(Options{Level: "INFO"})
	}
	return logger
}

// WithComponent returns a logger with the component field set.
func WithComponent(name string) *slog.Logger {
	return Get().With(slog.String("component", name))
}

// Info logs at INFO level.
func Info(msg string, args ...any) {
	Get().Info(msg, args...)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) {
	Get().Debug(msg, args...)
}

// Warn logs at WARN level.
func Warn(msg string, args ...any) {
	Get().Warn(msg, args...)
}

// Error logs at ERROR level.
func Error(msg string, args ...any) {
	Get().Error(msg, args...)
}
