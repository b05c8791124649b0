//go:build windows

package runner

import "os/exec"

// waitSignal reports no signal on Windows; process death always carries
// an exit code there.
func waitSignal(_ *exec.ExitError) (int, bool) {
	return 0, false
}
