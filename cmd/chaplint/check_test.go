package main

import (
	"errors"
	"testing"

	"chaplint/internal/detect"
	"chaplint/internal/diag"
	"chaplint/internal/driver"
	"chaplint/internal/report"
)

func resultWith(t *testing.T, sev diag.Severity) *driver.FileResult {
	t.Helper()
	bag := diag.NewBag(0)
	bag.Add(diag.New(diag.MissingMarker, sev, 1, "引言", "标题中未发现章节标记"))
	return &driver.FileResult{
		Path: "a_chapters.json",
		Report: &report.Report{
			BookID: "a",
			Result: &detect.Result{Issues: bag},
		},
	}
}

func TestExitCode(t *testing.T) {
	medium := resultWith(t, diag.SevMedium)
	high := resultWith(t, diag.SevHigh)
	failed := &driver.FileResult{Path: "b_chapters.json", Err: errors.New("bad document")}

	tests := []struct {
		name    string
		strict  bool
		results []driver.FileResult
		want    int
	}{
		{"clean run", false, []driver.FileResult{*medium}, 0},
		{"high severity without strict", false, []driver.FileResult{*high}, 0},
		{"high severity with strict", true, []driver.FileResult{*high}, 1},
		{"medium severity with strict", true, []driver.FileResult{*medium}, 0},
		{"load failure always fails", false, []driver.FileResult{*medium, *failed}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCode(checkOptions{strict: tt.strict}, tt.results)
			if got != tt.want {
				t.Fatalf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBatteryCoversEveryRuleKind(t *testing.T) {
	seen := map[diag.Kind]bool{}
	for _, ri := range battery {
		for _, k := range ri.Kinds {
			if seen[k] {
				t.Fatalf("kind %s listed twice", k)
			}
			seen[k] = true
		}
	}
	want := []diag.Kind{
		diag.MergedHeading, diag.DuplicateTitle,
		diag.LongTitle, diag.HighPunctuation, diag.SuspiciousTitle,
		diag.MultipleUpperMarkers, diag.ReversedHierarchy,
		diag.MissingMarker,
	}
	for _, k := range want {
		if !seen[k] {
			t.Errorf("kind %s missing from the battery listing", k)
		}
	}
}
