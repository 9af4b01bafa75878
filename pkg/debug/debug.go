// Package debug provides conditional debug tracing for algodocs.
//
// Debug tracing is enabled by setting the ALGODOCS_DEBUG environment variable:
//
//	ALGODOCS_DEBUG=1 algodocs /docs/heap-sort
//
// When enabled, messages go to the application log at debug level, and the
// log level is lowered so they are kept. When disabled (default), all debug
// functions are no-ops.
//
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    debug.Log("processing %d pages", count)
//	}
package debug

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/vanderheijden86/algodocs/pkg/logging"
)

var enabled atomic.Bool

func init() {
	if os.Getenv("ALGODOCS_DEBUG") != "" {
		enabled.Store(true)
	}
}

// Enabled returns whether debug tracing is enabled.
func Enabled() bool {
	return enabled.Load()
}

// SetEnabled allows programmatic control of debug tracing. Enabling it also
// lowers the log level to debug.
func SetEnabled(e bool) {
	enabled.Store(e)
	if e {
		logging.SetLevel(slog.LevelDebug)
	}
}

func logger() *slog.Logger {
	return logging.WithComponent("debug")
}

// Log writes a debug message if debug tracing is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	logger().Debug(fmt.Sprintf(format, args...))
}

// LogTiming writes a timing message if debug tracing is enabled.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	logger().Debug("timing", "name", name, "took", d)
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("loadCatalog")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	logger().Debug("-> " + name)
	start := time.Now()
	return func() {
		logger().Debug("<- "+name, "took", time.Since(start))
	}
}

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	logger().Debug(fmt.Sprintf("%s: %T = %+v", name, v, v))
}
