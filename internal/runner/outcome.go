package runner

import "fmt"

// ExitLaunchFailed is the reserved exit code used when the child could
// not be spawned at all. It is deliberately outside the range a normal
// wrapper invocation would produce so callers can tell "the task failed"
// apart from "the task never ran".
const ExitLaunchFailed = 127

type outcomeKind int

const (
	kindCompleted outcomeKind = iota
	kindTerminated
	kindLaunchFailed
)

// Outcome is the terminal result of one child execution. Exactly one of
// exit code, signal, or launch error is meaningful, selected by the
// constructor used.
type Outcome struct {
	kind   outcomeKind
	code   int
	signal int
	err    error
}

// Completed records a normal exit with the given code.
func Completed(code int) Outcome { return Outcome{kind: kindCompleted, code: code} }

// Terminated records death by signal.
func Terminated(sig int) Outcome { return Outcome{kind: kindTerminated, signal: sig} }

// LaunchFailed records that the child never started.
func LaunchFailed(err error) Outcome { return Outcome{kind: kindLaunchFailed, err: err} }

// Success reports whether the child ran and exited cleanly.
func (o Outcome) Success() bool { return o.kind == kindCompleted && o.code == 0 }

// Launched reports whether an execution was actually attempted.
func (o Outcome) Launched() bool { return o.kind != kindLaunchFailed }

// ExitStatus maps the outcome onto the wrapper's own exit code: the
// child's code for a normal exit, 128+signal for a signal death
// (shell convention), or ExitLaunchFailed when spawning failed.
func (o Outcome) ExitStatus() int {
	switch o.kind {
	case kindTerminated:
		return 128 + o.signal
	case kindLaunchFailed:
		return ExitLaunchFailed
	default:
		return o.code
	}
}

// Reason renders the outcome as a short diagnostic phrase. Signals are
// reported by number; signal names vary across platforms.
func (o Outcome) Reason() string {
	switch o.kind {
	case kindTerminated:
		return fmt.Sprintf("terminated by signal %d", o.signal)
	case kindLaunchFailed:
		return fmt.Sprintf("failed to start: %v", o.err)
	default:
		return fmt.Sprintf("exit code %d", o.code)
	}
}

// Err returns the launch error, nil unless spawning failed.
func (o Outcome) Err() error { return o.err }
