package observ_test

import (
	"strings"
	"testing"
	"time"

	"retab/internal/observ"
)

func TestTimerReport(t *testing.T) {
	timer := observ.NewTimer()
	idx := timer.Begin("scan")
	time.Sleep(time.Millisecond)
	timer.End(idx, "12 lines")

	report := timer.Report()
	if len(report.Phases) != 1 {
		t.Fatalf("ожидали 1 фазу, получили %d", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].Note != "12 lines" {
		t.Fatalf("неожиданная фаза: %+v", report.Phases[0])
	}
	if report.TotalMS <= 0 {
		t.Fatalf("total должен быть положительным, получили %v", report.TotalMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	timer := observ.NewTimer()
	// некорректный индекс не должен паниковать
	timer.End(-1, "")
	timer.End(3, "")
	if got := timer.Report(); len(got.Phases) != 0 {
		t.Fatalf("ожидали пустой отчёт, получили %+v", got)
	}
}

func TestTimerSummary(t *testing.T) {
	timer := observ.NewTimer()
	a := timer.Begin("repair")
	timer.End(a, "")
	b := timer.Begin("format")
	timer.End(b, "wrapped 2")

	s := timer.Summary()
	for _, want := range []string{"timings:", "repair", "format", "wrapped 2", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("в сводке нет %q:\n%s", want, s)
		}
	}
}
