package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 items")
	_ = tm.Measure("emit", func() error { return errors.New("boom") })
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("phases = %d", len(rep.Phases))
	}
	if rep.Phases[1].Note != "failed" {
		t.Fatalf("note = %q", rep.Phases[1].Note)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "parse") || !strings.Contains(sum, "// 3 items") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}
