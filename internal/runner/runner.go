// Package runner executes the wrapped command, streaming its combined
// stdout and stderr into a capture buffer while waiting for termination.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/loykin/taskping/internal/capture"
)

// Runner executes a single command and records its outcome. The capture
// buffer is written only by the child's output stream and must be read
// after Run returns.
type Runner struct {
	buf      *capture.Buffer
	logger   *slog.Logger
	duration time.Duration
}

func New(buf *capture.Buffer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{buf: buf, logger: logger}
}

// Run spawns argv[0] with the remaining elements as arguments. The
// child's stdout and stderr are merged into one stream and drained into
// the capture buffer concurrently with the wait, so the child never
// blocks on a full pipe. Interleaving of the two streams follows OS
// pipe buffering and is approximately, not exactly, real-time order.
// The child's output is not mirrored to the parent's stdio.
func (r *Runner) Run(ctx context.Context, argv []string) Outcome {
	if len(argv) == 0 {
		return LaunchFailed(errors.New("empty command"))
	}
	// ok: running the user's command is the whole point
	// #nosec G204
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Assigning the same writer to both streams makes os/exec share a
	// single pipe and copier, which merges the streams for us.
	cmd.Stdout = r.buf
	cmd.Stderr = r.buf

	r.logger.Debug("about to run", "argv", argv, "capture", r.buf.Mode().String())

	start := time.Now()
	if err := cmd.Start(); err != nil {
		r.duration = time.Since(start)
		r.logger.Debug("spawn failed", "err", err)
		return LaunchFailed(err)
	}
	err := cmd.Wait()
	r.duration = time.Since(start)

	out := mapWait(err)
	r.logger.Debug("command finished",
		"status", out.Reason(),
		"duration", r.duration,
		"captured_bytes", r.buf.Len(),
		"total_bytes", r.buf.Total())
	return out
}

// Duration reports how long the child ran (or how long the failed spawn
// attempt took). Valid after Run returns.
func (r *Runner) Duration() time.Duration { return r.duration }

// Capture returns the buffer the runner drains into.
func (r *Runner) Capture() *capture.Buffer { return r.buf }

// mapWait distills cmd.Wait's result into an Outcome.
func mapWait(err error) Outcome {
	if err == nil {
		return Completed(0)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if sig, ok := waitSignal(exitErr); ok {
			return Terminated(sig)
		}
		return Completed(exitErr.ExitCode())
	}
	// Wait itself failed (e.g. I/O error copying output). The child was
	// started, but its status is unknowable; treat it like a launch
	// failure so the wrapper reports and exits with the reserved code.
	return LaunchFailed(err)
}
