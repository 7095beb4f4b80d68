// Package logger provides structured logging for the sitecms CLI.
//
// Output is quiet by default: only errors are written. The --verbose flag
// enables debug output so users can follow pulls, cache writes and
// fallbacks. Components take a child logger from WithComponent.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	jsonOut bool
	output  io.Writer = os.Stderr
	base              = build()
)

// Config holds logging configuration.
type Config struct {
	Verbose    bool
	JSONOutput bool
	Output     io.Writer
}

// Init configures the global logger in one step.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	verbose = cfg.Verbose
	jsonOut = cfg.JSONOutput
	if cfg.Output != nil {
		output = cfg.Output
	}
	base = build()
}

// build constructs the logger from the current settings (caller must hold lock).
func build() zerolog.Logger {
	level := zerolog.ErrorLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	var l zerolog.Logger
	if jsonOut {
		l = zerolog.New(output).With().Timestamp().Logger()
	} else {
		l = zerolog.New(zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
		}).With().Timestamp().Logger()
	}
	return l.Level(level)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetJSON switches between console and JSON output.
func SetJSON(v bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOut = v
	base = build()
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// Logger returns the current global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent creates a child logger with a component field.
func WithComponent(component string) zerolog.Logger {
	return Logger().With().Str("component", component).Logger()
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// Section logs a section header at debug level.
func Section(name string) {
	l := Logger()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs an error with a message.
func Error(err error, msg string) {
	l := Logger()
	l.Error().Err(err).Msg(msg)
}
