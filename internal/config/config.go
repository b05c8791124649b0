// Package config holds the immutable run configuration assembled by the
// CLI layer and consumed by the rest of the pipeline.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/loykin/taskping/internal/capture"
)

// DefaultBaseURL is the public healthchecks ping endpoint.
const DefaultBaseURL = "https://hc-ping.com"

// Config identifies the check to ping, the command to run, and the
// behavior flags for one invocation. Built once and never mutated.
type Config struct {
	// Check identity: either UUID, or Slug plus PingKey.
	UUID    string
	Slug    string
	PingKey string

	BaseURL   string
	UserAgent string

	// Command is the argv to execute, passed through unmodified.
	Command []string

	NotifyStart bool // send a start ping before running
	Capture     capture.Mode
	Detailed    bool // include execution metadata in the body
	IncludeEnv  bool // also include the process environment (requires Detailed)
	LogOnly     bool // record the run without touching the check's status
	Verbose     bool // diagnostics on stderr
	LogFile     string
}

// Validate checks identity and flag consistency. It must pass before
// any execution or network activity happens.
func (c *Config) Validate() error {
	switch {
	case c.UUID == "" && c.Slug == "":
		return errors.New("either --uuid or --slug is required")
	case c.UUID != "" && c.Slug != "":
		return errors.New("--uuid and --slug are mutually exclusive")
	case c.Slug != "" && c.PingKey == "":
		return errors.New("--slug requires --ping-key")
	}
	if c.UUID != "" {
		if _, err := uuid.Parse(c.UUID); err != nil {
			return fmt.Errorf("invalid check UUID %q: %w", c.UUID, err)
		}
	}
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	if len(c.Command) == 0 {
		return errors.New("no command given")
	}
	if c.Capture == capture.None && (c.Detailed || c.IncludeEnv) {
		return errors.New("--ping-only conflicts with --detailed and --env")
	}
	if c.IncludeEnv && !c.Detailed {
		return errors.New("--env requires --detailed")
	}
	if c.LogOnly && c.NotifyStart {
		return errors.New("--log conflicts with --time")
	}
	return nil
}

// URLPrefix returns the per-check base of every ping URL: base/uuid for
// UUID identification, base/slug for slug identification (the ping key
// travels as a query parameter, attached by the dispatcher).
func (c *Config) URLPrefix() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if c.UUID != "" {
		return base + "/" + c.UUID
	}
	return base + "/" + c.Slug
}

// Defaults are the settings resolvable outside the command line: from
// TASKPING_* environment variables, or from an optional TOML file at
// <user config dir>/taskping/taskping.toml. Explicit flags win over
// both; the environment wins over the file.
type Defaults struct {
	BaseURL   string `mapstructure:"base_url"`
	PingKey   string `mapstructure:"ping_key"`
	UserAgent string `mapstructure:"user_agent"`
	LogFile   string `mapstructure:"log_file"`
}

// LoadDefaults resolves Defaults via viper. A missing defaults file is
// not an error; a malformed one is.
func LoadDefaults() (Defaults, error) {
	return loadDefaults(defaultsPath())
}

func defaultsPath() string {
	d, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(d, "taskping", "taskping.toml")
}

func loadDefaults(path string) (Defaults, error) {
	v := viper.New()
	v.SetEnvPrefix("TASKPING")
	// Defaults register the keys so env-bound values survive Unmarshal.
	v.SetDefault("base_url", DefaultBaseURL)
	for _, key := range []string{"ping_key", "user_agent", "log_file"} {
		v.SetDefault(key, "")
	}
	for _, key := range []string{"base_url", "ping_key", "user_agent", "log_file"} {
		_ = v.BindEnv(key)
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return Defaults{}, fmt.Errorf("read defaults file %s: %w", path, err)
			}
		}
	}
	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults: %w", err)
	}
	return d, nil
}
