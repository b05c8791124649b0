// Package logger configures the diagnostic side channel. Diagnostics go
// to stderr (and optionally a rotating file), never to stdout: stdout
// stays untouched so the wrapper is silent by default.
package logger

import (
	"io"
	"log/slog"
	"os"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults for the optional diagnostic log file.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config selects where diagnostics go. With Verbose false and no File,
// everything is discarded.
type Config struct {
	Verbose bool   // debug-level diagnostics on stderr
	File    string // optional rotating file, written regardless of Verbose
}

// New builds the diagnostic logger. The returned closer flushes the
// rotating file writer, best effort; it is non-nil only when a file
// sink is configured.
func New(c Config) (*slog.Logger, io.Closer) {
	var sinks []io.Writer
	if c.Verbose {
		sinks = append(sinks, os.Stderr)
	}
	var closer io.Closer
	if c.File != "" {
		w := &lj.Logger{
			Filename:   c.File,
			MaxSize:    DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAge:     DefaultMaxAgeDays,
		}
		sinks = append(sinks, w)
		closer = w
	}
	if len(sinks) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})), nil
	}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handler slog.Handler
	if c.Verbose && c.File == "" {
		handler = NewColorTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(io.MultiWriter(sinks...), opts)
	}
	return slog.New(handler), closer
}
