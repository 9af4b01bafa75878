// Package logging configures the process-wide slog logger.
//
// Records always go to a rotating JSON log file. A human-readable stderr
// handler is added only when the terminal is not owned by the desktop, since
// anything written to stderr would tear the TUI. Values can be provided
// directly or via environment variables:
//   - ALGODOCS_LOG_LEVEL=debug|info|warn|error
//   - ALGODOCS_LOG_FILE=<path>
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	lj "gopkg.in/natefinch/lumberjack.v2"

	"github.com/vanderheijden86/algodocs/pkg/version"
)

// Options controls logger initialization.
type Options struct {
	Level string
	// File enables the rotating JSON log when set.
	File string
	// Stderr adds a text handler on Stderr (or os.Stderr when nil).
	Console bool
	Stderr  io.Writer
}

var (
	level = new(slog.LevelVar)

	defaultLoggerMu sync.RWMutex
	defaultLogger   *slog.Logger
	closer          io.Closer
)

// L returns the application logger, initializing from env if needed.
func L() *slog.Logger {
	defaultLoggerMu.RLock()
	l := defaultLogger
	defaultLoggerMu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Init configures the global logger and sets slog.Default as well.
// Calling it again replaces the previous configuration and closes its file.
func Init(opts Options) *slog.Logger {
	level.Set(ParseLevel(opts.Level))

	var handlers []slog.Handler
	var file *lj.Logger
	if strings.TrimSpace(opts.File) != "" {
		file = &lj.Logger{Filename: opts.File, MaxSize: 5, MaxBackups: 3, MaxAge: 28, Compress: true}
		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level}))
	}
	if opts.Console {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		handlers = append(handlers, slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	}

	var h slog.Handler
	switch len(handlers) {
	case 0:
		h = slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: level})
	case 1:
		h = handlers[0]
	default:
		h = slogmulti.Fanout(handlers...)
	}

	logger := slog.New(h).With(
		slog.String("app", "algodocs"),
		slog.String("ver", version.Version),
	)

	defaultLoggerMu.Lock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	if file != nil {
		closer = file
	}
	defaultLogger = logger
	defaultLoggerMu.Unlock()
	slog.SetDefault(logger)
	return logger
}

// Close flushes and closes the log file, if any.
func Close() error {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	return err
}

// FromEnv builds Options from environment variables.
func FromEnv() Options {
	return Options{
		Level: getenv("ALGODOCS_LOG_LEVEL", "info"),
		File:  os.Getenv("ALGODOCS_LOG_FILE"),
	}
}

// SetLevel changes the level of every handler installed by Init.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the current level.
func Level() slog.Level {
	return level.Level()
}

// WithComponent returns a logger with the component attribute pre-set.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
