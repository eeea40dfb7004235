package diag

import (
	"sort"

	"fortio.org/safecast"
)

// Bag collects issues in emission order, capped at a fixed limit. Rule
// execution order is the default ordering; display-time resorting is done
// on a copy so two runs over the same input stay byte-identical.
type Bag struct {
	items []Issue
	max   uint16
}

// NewBag creates a Bag holding at most max issues. Non-positive or
// overflowing limits clamp to the uint16 range.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil || max <= 0 {
		limit = ^uint16(0)
	}
	return &Bag{
		items: make([]Issue, 0, min(int(limit), 64)),
		max:   limit,
	}
}

// Add appends an issue, honoring the cap. Returns false when the issue was
// dropped because the cap was reached.
func (b *Bag) Add(is Issue) bool {
	if len(b.items) >= int(b.max) {
		return false
	}
	b.items = append(b.items, is)
	return true
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the issues in emission order. The slice aliases the Bag's
// internal storage; callers must not modify it.
func (b *Bag) Items() []Issue {
	return b.items
}

// Merge appends every issue from other, growing the cap when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.max) {
		if grown, err := safecast.Conv[uint16](total); err == nil {
			b.max = grown
		} else {
			b.max = ^uint16(0)
		}
	}
	b.items = append(b.items, other.items...)
}

// HasSeverity reports whether any collected issue is at least sev.
func (b *Bag) HasSeverity(sev Severity) bool {
	for i := range b.items {
		if b.items[i].Severity >= sev {
			return true
		}
	}
	return false
}

// CountByKind returns the number of collected issues of the given kind.
func (b *Bag) CountByKind(kind Kind) int {
	n := 0
	for i := range b.items {
		if b.items[i].Kind == kind {
			n++
		}
	}
	return n
}

// SortedForDisplay returns a copy ordered by severity (high first), then
// chapter, then kind. The Bag itself keeps emission order.
func (b *Bag) SortedForDisplay() []Issue {
	out := make([]Issue, len(b.items))
	copy(out, b.items)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].Chapter != out[j].Chapter {
			return out[i].Chapter < out[j].Chapter
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
