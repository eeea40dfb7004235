package marker

import (
	"fmt"
	"strings"
)

// Set holds the two disjoint families of single-rune heading markers.
// Upper markers name volume/part-level groupings (卷, 部, ...); chapter
// markers name the heading unit itself (章, 节, ...). A Set is treated as
// immutable after construction: the detector compiles its patterns once
// and never writes back.
type Set struct {
	Upper   []rune
	Chapter []rune
}

// Default returns the marker taxonomy used by the extraction pipeline.
func Default() Set {
	return Set{
		Upper:   []rune("卷部册季"),
		Chapter: []rune("章节回集篇幕话段折品"),
	}
}

// All returns upper markers followed by chapter markers.
func (s Set) All() []rune {
	all := make([]rune, 0, len(s.Upper)+len(s.Chapter))
	all = append(all, s.Upper...)
	all = append(all, s.Chapter...)
	return all
}

// Validate checks the Set invariants: both families non-empty and no rune
// shared between them.
func (s Set) Validate() error {
	if len(s.Upper) == 0 {
		return fmt.Errorf("marker set: no upper markers")
	}
	if len(s.Chapter) == 0 {
		return fmt.Errorf("marker set: no chapter markers")
	}
	upper := make(map[rune]bool, len(s.Upper))
	for _, r := range s.Upper {
		if upper[r] {
			return fmt.Errorf("marker set: duplicate upper marker %q", r)
		}
		upper[r] = true
	}
	seen := make(map[rune]bool, len(s.Chapter))
	for _, r := range s.Chapter {
		if seen[r] {
			return fmt.Errorf("marker set: duplicate chapter marker %q", r)
		}
		seen[r] = true
		if upper[r] {
			return fmt.Errorf("marker set: marker %q is both upper and chapter", r)
		}
	}
	return nil
}

// ContainsUpper reports whether the title contains any upper marker rune,
// regardless of position. This is substring containment, not the canonical
// occurrence test; several rules deliberately use the looser form.
func (s Set) ContainsUpper(title string) bool {
	return strings.ContainsAny(title, string(s.Upper))
}

// ContainsAny reports whether the title contains any marker rune at all.
func (s Set) ContainsAny(title string) bool {
	return strings.ContainsAny(title, string(s.All()))
}
