package runner

import (
	"errors"
	"testing"
)

func TestOutcomeMapping(t *testing.T) {
	launchErr := errors.New("exec: not found")
	cases := []struct {
		name    string
		outcome Outcome
		exit    int
		reason  string
		success bool
	}{
		{"clean", Completed(0), 0, "exit code 0", true},
		{"nonzero", Completed(3), 3, "exit code 3", false},
		{"signal", Terminated(9), 137, "terminated by signal 9", false},
		{"launch", LaunchFailed(launchErr), ExitLaunchFailed, "failed to start: exec: not found", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.outcome.ExitStatus(); got != tc.exit {
				t.Fatalf("ExitStatus() = %d, want %d", got, tc.exit)
			}
			if got := tc.outcome.Reason(); got != tc.reason {
				t.Fatalf("Reason() = %q, want %q", got, tc.reason)
			}
			if got := tc.outcome.Success(); got != tc.success {
				t.Fatalf("Success() = %v, want %v", got, tc.success)
			}
		})
	}
}

func TestLaunchedOnlyFalseForLaunchFailure(t *testing.T) {
	if LaunchFailed(errors.New("x")).Launched() {
		t.Fatalf("LaunchFailed should not report Launched")
	}
	if !Completed(1).Launched() || !Terminated(2).Launched() {
		t.Fatalf("attempted executions should report Launched")
	}
}
