package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	idx := timer.Begin("decode")
	timer.End(idx, "ok")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("got %d phases, want 1", len(report.Phases))
	}
	if report.Phases[0].Name != "decode" || report.Phases[0].Note != "ok" {
		t.Fatalf("phase mismatch: %+v", report.Phases[0])
	}
}

func TestTimerEnd_IgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("phantom phases recorded: %+v", got)
	}
}

func TestFromDurationsSummary(t *testing.T) {
	report := FromDurations(
		[]string{"decode", "flavor"},
		[]time.Duration{10 * time.Millisecond, 30 * time.Millisecond},
	)
	if report.TotalMS != 40 {
		t.Fatalf("total %v, want 40", report.TotalMS)
	}
	summary := report.Summary()
	for _, want := range []string{"decode", "flavor", "total", "40.00 ms"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}
