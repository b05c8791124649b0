// Package env snapshots the process environment for inclusion in
// detailed report bodies.
package env

import (
	"os"
	"sort"
	"strings"
)

type Var map[string]string

// FromOS captures the current process environment. Malformed entries
// (empty key, no '=') are skipped.
func FromOS() Var {
	return fromList(os.Environ())
}

func fromList(environ []string) Var {
	m := make(Var, len(environ))
	for _, kv := range environ {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		m[kv[:i]] = kv[i+1:]
	}
	return m
}

// Lines renders the snapshot as sorted "K=V" lines, one per variable,
// suitable for a report body.
func (v Var) Lines() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+v[k])
	}
	return out
}

// Dump renders the snapshot as a newline-joined block.
func (v Var) Dump() string {
	return strings.Join(v.Lines(), "\n")
}
