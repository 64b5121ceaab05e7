package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddAccumulates(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("indent", time.Millisecond)
		}()
	}
	wg.Wait()
	tm.Add("trailingSpace", 3*time.Millisecond)

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if p := report.Phases[0]; p.Name != "indent" || p.Count != 8 || p.DurationMS != 8 {
		t.Fatalf("unexpected indent phase %+v", p)
	}
	if report.TotalMS != 11 {
		t.Fatalf("total = %v", report.TotalMS)
	}
	summary := tm.Summary()
	if !strings.Contains(summary, "x8") || strings.Index(summary, "indent") > strings.Index(summary, "trailingSpace") {
		t.Fatalf("summary not sorted by duration:\n%s", summary)
	}
}

func TestTimerBeginEnd(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")
	report := tm.Report()
	if len(report.Phases) != 1 || report.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestNilTimerIgnoresSamples(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("collect files")
	tm.End(idx, "none")
	tm.Add("indent", time.Millisecond)
	if idx != -1 {
		t.Fatalf("Begin on nil timer = %d", idx)
	}
}
