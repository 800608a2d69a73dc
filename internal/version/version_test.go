package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func override(t *testing.T, v, commit, date string) {
	t.Helper()
	ov, oc, od := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = v, commit, date
	t.Cleanup(func() { Version, GitCommit, BuildDate = ov, oc, od })
}

func TestDescribePlain(t *testing.T) {
	override(t, "1.2.3", "abc123", "2026-01-15T10:30:00Z")
	want := "vecl 1.2.3\ncommit: abc123\nbuilt:  2026-01-15T10:30:00Z\n"
	if got := Describe(false); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestDescribeOmitsEmptyFields(t *testing.T) {
	override(t, "0.1.0-dev", "", "")
	if got := Describe(false); got != "vecl 0.1.0-dev\n" {
		t.Fatalf("got %q", got)
	}
}

func TestColored(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = prev })

	override(t, "2.0.1-rc1", "", "")
	got := Colored()
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("got %q", got)
	}

	override(t, "dev", "", "")
	if got := Colored(); got != "dev" {
		t.Fatalf("malformed version must pass through, got %q", got)
	}
}
