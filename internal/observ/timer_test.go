package observ_test

import (
	"strings"
	"testing"

	"confscan/internal/observ"
)

func TestTimerPhasesAndReport(t *testing.T) {
	timer := observ.NewTimer()

	first := timer.Begin("walk")
	timer.End(first, "files=3")
	second := timer.Begin("parse")
	timer.End(second, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "walk" || report.Phases[1].Name != "parse" {
		t.Errorf("phase names: %q, %q", report.Phases[0].Name, report.Phases[1].Name)
	}
	if report.Phases[0].Note != "files=3" {
		t.Errorf("note: got %q", report.Phases[0].Note)
	}
	if report.TotalMS < 0 {
		t.Errorf("negative total: %v", report.TotalMS)
	}
}

func TestTimerEndOutOfRangeIsNoop(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(-1, "x")
	timer.End(5, "x")
	if got := len(timer.Report().Phases); got != 0 {
		t.Errorf("expected empty report, got %d phases", got)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin("scan")
	timer.End(idx, "hits=7")

	summary := timer.Summary()
	for _, want := range []string{"timings:", "scan", "hits=7", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
