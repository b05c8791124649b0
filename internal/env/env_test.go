package env

import (
	"strings"
	"testing"
)

func TestFromListSkipsMalformed(t *testing.T) {
	v := fromList([]string{"A=1", "=bad", "noequals", "B=x=y"})
	if len(v) != 2 {
		t.Fatalf("expected 2 entries, got %d: %#v", len(v), v)
	}
	if v["A"] != "1" || v["B"] != "x=y" {
		t.Fatalf("unexpected values: %#v", v)
	}
}

func TestLinesSorted(t *testing.T) {
	v := Var{"ZEBRA": "z", "ALPHA": "a", "MID": "m"}
	lines := v.Lines()
	want := []string{"ALPHA=a", "MID=m", "ZEBRA=z"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines", len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDumpJoinsWithNewlines(t *testing.T) {
	v := Var{"A": "1", "B": "2"}
	if got := v.Dump(); got != "A=1\nB=2" {
		t.Fatalf("dump %q", got)
	}
}

func TestFromOSSeesSetenv(t *testing.T) {
	t.Setenv("TASKPING_ENV_PROBE", "present")
	v := FromOS()
	if v["TASKPING_ENV_PROBE"] != "present" {
		t.Fatalf("probe variable missing from snapshot")
	}
	if !strings.Contains(v.Dump(), "TASKPING_ENV_PROBE=present") {
		t.Fatalf("probe variable missing from dump")
	}
}
