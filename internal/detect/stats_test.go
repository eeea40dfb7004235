package detect

import (
	"math"
	"reflect"
	"testing"
)

func TestStatistics(t *testing.T) {
	d := newDetector(t)

	stats := d.Statistics(entries(
		"第二卷 第一章 风起", // 10 runes, upper prefix
		"第二章 再会",     // 6 runes
		"楔子",         // 2 runes
	))

	if stats.TotalChapters != 3 {
		t.Errorf("total = %d, want 3", stats.TotalChapters)
	}
	if stats.MinTitleLength != 2 || stats.MaxTitleLength != 10 {
		t.Errorf("length range = %d-%d, want 2-10", stats.MinTitleLength, stats.MaxTitleLength)
	}
	if want := 6.0; math.Abs(stats.AvgTitleLength-want) > 1e-9 {
		t.Errorf("avg = %v, want %v", stats.AvgTitleLength, want)
	}
	if stats.ChaptersWithUpperPrefix != 1 {
		t.Errorf("upper prefix count = %d, want 1", stats.ChaptersWithUpperPrefix)
	}
	if want := 100.0 / 3.0; math.Abs(stats.PrefixRatio-want) > 1e-9 {
		t.Errorf("prefix ratio = %v, want %v", stats.PrefixRatio, want)
	}

	// Marker usage in taxonomy order, zero-usage markers omitted, counted
	// per title.
	want := []MarkerCount{{Marker: "卷", Count: 1}, {Marker: "章", Count: 2}}
	if !reflect.DeepEqual(stats.MarkerUsage, want) {
		t.Errorf("marker usage = %+v, want %+v", stats.MarkerUsage, want)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	d := newDetector(t)
	stats := d.Statistics(nil)
	if !reflect.DeepEqual(stats, Statistics{}) {
		t.Fatalf("empty input stats = %+v", stats)
	}
}

func TestStatisticsCountsRunesNotBytes(t *testing.T) {
	d := newDetector(t)
	stats := d.Statistics(entries("第一章"))
	if stats.MinTitleLength != 3 || stats.MaxTitleLength != 3 {
		t.Fatalf("CJK title length = %d-%d, want 3-3", stats.MinTitleLength, stats.MaxTitleLength)
	}
}
