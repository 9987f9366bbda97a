// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log zerolog.Logger

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	Log = newConsole(os.Stderr)
}

func newConsole(out io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Configure applies the level and output format from configuration.
// Format "json" switches to JSON lines; anything else keeps the console writer.
func Configure(level, format string) {
	SetLevel(level)
	if format == "json" {
		SetJSON()
	}
}

// SetLevel sets the global log level.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetJSON switches to JSON output (for production).
// Logs go to stderr so command output on stdout stays clean.
func SetJSON() {
	Log = zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger()
}

// SetOutput redirects the console logger, mainly for tests.
func SetOutput(w io.Writer) {
	Log = newConsole(w)
}
