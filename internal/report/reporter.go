package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/loykin/taskping/internal/capture"
	"github.com/loykin/taskping/internal/config"
	"github.com/loykin/taskping/internal/env"
)

// DefaultTimeout bounds every ping request. The monitoring service
// recommends a client-side timeout so a slow endpoint cannot stall the
// wrapper after the task has already finished.
const DefaultTimeout = 10 * time.Second

// logPreviewLimit bounds how much body text verbose diagnostics print.
const logPreviewLimit = 1000

// Details carries execution metadata for detailed report bodies.
type Details struct {
	Command    []string
	ExitStatus int
	Duration   time.Duration
}

// DispatchError describes a failed ping: either the transport failed or
// the endpoint answered outside 2xx. Callers log it and move on; it
// never affects the wrapper's exit code.
type DispatchError struct {
	URL        string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *DispatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ping %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("ping %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Reporter sends pings for one check. It is constructed once from the
// run configuration and passed explicitly so tests can point it at a
// fake endpoint.
type Reporter struct {
	client     *http.Client
	prefix     string
	pingKey    string
	userAgent  string
	detailed   bool
	includeEnv bool
	headCapped bool
	runID      string
	logger     *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		client:     &http.Client{Timeout: DefaultTimeout},
		prefix:     cfg.URLPrefix(),
		pingKey:    cfg.PingKey,
		userAgent:  UserAgent(cfg.UserAgent),
		detailed:   cfg.Detailed,
		includeEnv: cfg.IncludeEnv,
		headCapped: cfg.Capture == capture.Head,
		logger:     logger,
	}
}

// NotifyStart sends the pre-run start ping. It assigns a run ID that
// the completion ping will carry too, so the service can pair the two
// events.
func (r *Reporter) NotifyStart(ctx context.Context) error {
	r.runID = uuid.NewString()
	return r.do(ctx, http.MethodGet, r.pingURL(Started), nil)
}

// RunID returns the identifier assigned by NotifyStart, empty if no
// start ping was sent.
func (r *Reporter) RunID() string { return r.runID }

// Send dispatches a completion intent. Exactly one attempt: the
// service's own silence alerting covers lost pings, so client-side
// retries buy little.
func (r *Reporter) Send(ctx context.Context, intent Intent, d Details) error {
	if intent.Kind == Started {
		return r.NotifyStart(ctx)
	}
	return r.do(ctx, http.MethodPost, r.pingURL(intent.Kind), r.composeBody(intent, d))
}

func (r *Reporter) pingURL(kind Kind) string {
	u := r.prefix
	switch kind {
	case Started:
		u += "/start"
	case Failed:
		u += "/fail"
	case Logged:
		u += "/log"
	}
	q := url.Values{}
	if r.pingKey != "" {
		q.Set("pk", r.pingKey)
	}
	if r.runID != "" {
		q.Set("rid", r.runID)
	}
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// composeBody builds the request body: raw capture by default, the
// detailed block when requested, and for failures the reason appended
// so an empty capture still explains itself. The result is re-capped to
// the capture limit since detail text can push it over.
func (r *Reporter) composeBody(intent Intent, d Details) []byte {
	var body []byte
	switch {
	case r.detailed:
		var b strings.Builder
		if r.includeEnv {
			b.WriteString(env.FromOS().Dump())
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "$ %s 2>&1\n", strings.Join(d.Command, " "))
		b.Write(intent.Body)
		fmt.Fprintf(&b, "\n\nExit Code: %d\nDuration: %s", d.ExitStatus, d.Duration)
		body = []byte(b.String())
	case intent.Kind == Failed && intent.Reason != "":
		if len(intent.Body) > 0 {
			body = append(append(append(body, intent.Body...), '\n', '\n'), intent.Reason...)
		} else {
			body = []byte(intent.Reason)
		}
	default:
		body = intent.Body
	}
	return capBody(body, r.headCapped)
}

func capBody(body []byte, head bool) []byte {
	if len(body) <= capture.Limit {
		return body
	}
	if head {
		return body[:capture.Limit]
	}
	return body[len(body)-capture.Limit:]
}

func (r *Reporter) do(ctx context.Context, method, pingURL string, body []byte) error {
	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, pingURL, reader)
	if err != nil {
		return &DispatchError{URL: pingURL, Err: err}
	}
	req.Header.Set("User-Agent", r.userAgent)

	r.logger.Debug("sending ping",
		"method", method,
		"url", pingURL,
		"bytes", len(body),
		"body", truncateForLog(string(body)))

	resp, err := r.client.Do(req)
	if err != nil {
		return &DispatchError{URL: pingURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DispatchError{URL: pingURL, StatusCode: resp.StatusCode}
	}
	return nil
}

// UserAgent composes the User-Agent header: the binary name plus the
// hostname, wrapped by the custom agent string when one is configured.
func UserAgent(custom string) string {
	base := "taskping"
	if host, err := os.Hostname(); err == nil && host != "" {
		base = "taskping - " + host
	}
	if custom != "" {
		return custom + " (" + base + ")"
	}
	return base
}

func truncateForLog(s string) string {
	if len(s) <= logPreviewLimit {
		return s
	}
	return s[:logPreviewLimit-3] + "..."
}
