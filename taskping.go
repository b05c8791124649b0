// Package taskping wraps a command execution with monitoring pings: it
// runs the command, captures a bounded window of its output, and reports
// the outcome to a healthchecks-style endpoint. The wrapper's exit code
// always mirrors the child's; reporting problems are never allowed to
// mask the task's own result.
package taskping

import (
	"context"

	"github.com/loykin/taskping/internal/capture"
	"github.com/loykin/taskping/internal/config"
	"github.com/loykin/taskping/internal/logger"
	"github.com/loykin/taskping/internal/report"
	"github.com/loykin/taskping/internal/runner"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Config = config.Config

type Outcome = runner.Outcome

type Intent = report.Intent

type Defaults = config.Defaults

const (
	// ExitUsage is returned for configuration errors, before any
	// execution or network activity.
	ExitUsage = 2
	// ExitLaunchFailed is the reserved code when the child never ran.
	ExitLaunchFailed = runner.ExitLaunchFailed
)

// CaptureTail, CaptureHead and CaptureNone select which window of the
// child's output is retained for the report body.
const (
	CaptureTail = capture.Tail
	CaptureHead = capture.Head
	CaptureNone = capture.None
)

// LoadDefaults resolves base URL, ping key, user agent and log file
// from the environment and the optional defaults file.
func LoadDefaults() (Defaults, error) { return config.LoadDefaults() }

// Run executes the configured command and performs the reporting
// sequence: optional start ping, execution with output capture,
// classification, one completion ping. The returned int is the exit
// code the process should terminate with; it reflects only the child's
// outcome (or ExitUsage for an invalid configuration). The returned
// error is non-nil only for configuration errors: reporting problems
// are logged on the diagnostic channel and swallowed so they can never
// disturb the exit code.
func Run(ctx context.Context, cfg *Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return ExitUsage, err
	}

	log, closer := logger.New(logger.Config{Verbose: cfg.Verbose, File: cfg.LogFile})
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	rep := report.New(cfg, log)
	if cfg.NotifyStart {
		if err := rep.NotifyStart(ctx); err != nil {
			log.Warn("start ping failed", "err", err)
		}
	}

	run := runner.New(capture.New(cfg.Capture), log)
	out := run.Run(ctx, cfg.Command)

	intent := report.Classify(out, cfg, run.Capture().Bytes())
	details := report.Details{
		Command:    cfg.Command,
		ExitStatus: out.ExitStatus(),
		Duration:   run.Duration(),
	}
	if err := rep.Send(ctx, intent, details); err != nil {
		log.Warn("ping failed", "kind", intent.Kind.String(), "err", err)
	}
	return out.ExitStatus(), nil
}
