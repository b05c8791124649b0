//go:build !windows

package runner

import (
	"os/exec"
	"syscall"
)

// waitSignal extracts the terminating signal number from an ExitError,
// if the child died to a signal rather than exiting.
func waitSignal(exitErr *exec.ExitError) (int, bool) {
	ws, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return 0, false
	}
	return int(ws.Signal()), true
}
