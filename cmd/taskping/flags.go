package main

import (
	"github.com/spf13/cobra"

	"github.com/loykin/taskping"
	"github.com/loykin/taskping/internal/capture"
)

// RootFlags holds every flag of the single taskping command. Defaults
// for base URL, ping key, user agent and log file come from the
// environment or the defaults file, so an explicit flag always wins.
type RootFlags struct {
	UUID      string
	Slug      string
	PingKey   string
	Time      bool
	Head      bool
	PingOnly  bool
	Log       bool
	Detailed  bool
	Env       bool
	Verbose   bool
	UserAgent string
	BaseURL   string
	LogFile   string
}

func (f *RootFlags) register(cmd *cobra.Command, d taskping.Defaults) {
	fs := cmd.Flags()
	fs.StringVarP(&f.UUID, "uuid", "k", "", "check's UUID to ping")
	fs.StringVarP(&f.Slug, "slug", "s", "", "check's slug to ping, requires --ping-key")
	fs.StringVar(&f.PingKey, "ping-key", d.PingKey, "project ping key, required with --slug (env: TASKPING_PING_KEY)")
	fs.BoolVarP(&f.Time, "time", "t", false, "ping when the command starts as well as completes")
	fs.BoolVar(&f.Head, "head", false, "send the first 10k bytes of output instead of the last")
	fs.BoolVar(&f.PingOnly, "ping-only", false, "don't send any command output")
	fs.BoolVar(&f.Log, "log", false, "record the run without signalling success or failure")
	fs.BoolVar(&f.Detailed, "detailed", false, "include execution details in the body")
	fs.BoolVar(&f.Env, "env", false, "also include the process environment, requires --detailed")
	fs.BoolVar(&f.Verbose, "verbose", false, "write diagnostics to stderr")
	fs.StringVar(&f.UserAgent, "user-agent", d.UserAgent, "customize the User-Agent header")
	fs.StringVar(&f.BaseURL, "base-url", d.BaseURL, "base URL of the monitoring endpoint (env: TASKPING_BASE_URL)")
	fs.StringVar(&f.LogFile, "log-file", d.LogFile, "also write diagnostics to this rotating file")
}

// toConfig assembles the run configuration from flags plus the
// positional command (everything after --, passed through unmodified).
func (f *RootFlags) toConfig(command []string) *taskping.Config {
	mode := capture.Tail
	switch {
	case f.PingOnly:
		mode = capture.None
	case f.Head:
		mode = capture.Head
	}
	return &taskping.Config{
		UUID:        f.UUID,
		Slug:        f.Slug,
		PingKey:     f.PingKey,
		BaseURL:     f.BaseURL,
		UserAgent:   f.UserAgent,
		Command:     command,
		NotifyStart: f.Time,
		Capture:     mode,
		Detailed:    f.Detailed,
		IncludeEnv:  f.Env,
		LogOnly:     f.Log,
		Verbose:     f.Verbose,
		LogFile:     f.LogFile,
	}
}
