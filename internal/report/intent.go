// Package report turns a run outcome into a monitoring ping: the
// classifier decides what kind of signal to send, the reporter builds
// and sends it.
package report

import (
	"github.com/loykin/taskping/internal/config"
	"github.com/loykin/taskping/internal/runner"
)

// Kind is the signal type understood by the monitoring service.
type Kind int

const (
	// Started is sent before the command runs when --time is set.
	Started Kind = iota
	// Succeeded marks the check as up.
	Succeeded
	// Failed marks the check as down.
	Failed
	// Logged records the run without touching the check's status.
	Logged
)

func (k Kind) String() string {
	switch k {
	case Started:
		return "start"
	case Succeeded:
		return "success"
	case Failed:
		return "fail"
	default:
		return "log"
	}
}

// Intent is what gets sent: a kind, the captured output, and for
// failures a short reason. Intents are produced only by Classify (and
// StartIntent for the pre-run ping), never assembled ad hoc.
type Intent struct {
	Kind   Kind
	Body   []byte
	Reason string
}

// Classify maps the outcome of a finished (or failed-to-start) run onto
// the intent to dispatch. It is pure: the same outcome and configuration
// always produce the same intent.
//
// Log-only runs always yield Logged, whatever the outcome. Otherwise a
// clean exit yields Succeeded and everything else, including launch
// failures, yields Failed with the outcome's reason.
func Classify(out runner.Outcome, cfg *config.Config, captured []byte) Intent {
	if cfg.LogOnly {
		return Intent{Kind: Logged, Body: captured}
	}
	if out.Success() {
		return Intent{Kind: Succeeded, Body: captured}
	}
	return Intent{Kind: Failed, Body: captured, Reason: out.Reason()}
}

// StartIntent is the additional pre-run signal sent when
// report-on-start is enabled. It carries no body.
func StartIntent() Intent { return Intent{Kind: Started} }
