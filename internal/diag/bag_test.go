package diag

import (
	"reflect"
	"testing"
)

func TestBagCap(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(MergedHeading, SevHigh, 1, "a", "")) {
		t.Fatal("first add should succeed")
	}
	if !b.Add(New(LongTitle, SevMedium, 2, "b", "")) {
		t.Fatal("second add should succeed")
	}
	if b.Add(New(MissingMarker, SevMedium, 3, "c", "")) {
		t.Fatal("third add should be dropped by the cap")
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := NewBag(1)
	a.Add(New(MergedHeading, SevHigh, 1, "a", ""))
	other := NewBag(2)
	other.Add(New(LongTitle, SevMedium, 2, "b", ""))
	other.Add(New(MissingMarker, SevMedium, 3, "c", ""))

	a.Merge(other)
	if a.Len() != 3 {
		t.Fatalf("Len after merge = %d, want 3", a.Len())
	}
}

func TestSortedForDisplayKeepsEmissionOrder(t *testing.T) {
	b := NewBag(10)
	b.Add(New(LongTitle, SevMedium, 7, "a", ""))
	b.Add(New(MergedHeading, SevHigh, 9, "b", ""))
	b.Add(New(DuplicateTitle, SevHigh, 2, "c", ""))

	sorted := b.SortedForDisplay()
	wantKinds := []Kind{DuplicateTitle, MergedHeading, LongTitle}
	for i, k := range wantKinds {
		if sorted[i].Kind != k {
			t.Fatalf("sorted[%d].Kind = %s, want %s", i, sorted[i].Kind, k)
		}
	}

	// Emission order untouched.
	got := []Kind{b.Items()[0].Kind, b.Items()[1].Kind, b.Items()[2].Kind}
	want := []Kind{LongTitle, MergedHeading, DuplicateTitle}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("emission order changed: %v", got)
	}
}

func TestKindNames(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		id   string
	}{
		{MergedHeading, "merged_heading", "STR1001"},
		{DuplicateTitle, "duplicate_title", "STR1002"},
		{LongTitle, "long_title", "TXT2001"},
		{HighPunctuation, "high_punctuation", "TXT2002"},
		{SuspiciousTitle, "suspicious_title", "TXT2003"},
		{MultipleUpperMarkers, "multiple_upper_markers", "HIE3001"},
		{ReversedHierarchy, "reversed_hierarchy", "HIE3002"},
		{MissingMarker, "missing_marker", "MRK4001"},
		{LoadError, "load_error", "IO5001"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.name {
			t.Errorf("%d.String() = %q, want %q", tt.kind, got, tt.name)
		}
		if got := tt.kind.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.kind, got, tt.id)
		}
	}
}

func TestSeverityString(t *testing.T) {
	if SevHigh.String() != "high" || SevMedium.String() != "medium" || SevLow.String() != "low" {
		t.Fatal("severity names changed")
	}
	if SevHigh <= SevMedium || SevMedium <= SevLow {
		t.Fatal("severity ordering must be low < medium < high")
	}
}
