package detect

import (
	"fmt"
	"strings"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkHierarchy runs the two marker-ordering sub-checks. They are
// independent passes: first every title is scanned for more than one
// canonical upper-marker occurrence, then for a chapter marker matched
// before an upper marker. A well-formed title always states the volume
// before the chapter.
//
// The ordering sub-check compares raw match positions using the loose
// occurrence pattern. That is a known false-positive source on exotic
// titles, accepted on purpose: a full parse would defeat the point of a
// cheap structural scan.
func (d *Detector) checkHierarchy(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0

	for idx, ch := range chapters {
		matches := d.canonUpper.FindAllStringSubmatch(ch.Title, -1)
		if len(matches) > 1 {
			count++
			markers := make([]string, len(matches))
			for i, m := range matches {
				markers[i] = m[1]
			}
			bag.Add(diag.New(
				diag.MultipleUpperMarkers, diag.SevHigh, idx+1, ch.Title,
				fmt.Sprintf("包含多个上层标记: %s", strings.Join(markers, ", ")),
			))
		}
	}

	for idx, ch := range chapters {
		um := d.looseUpper.FindStringSubmatchIndex(ch.Title)
		cm := d.looseChapter.FindStringSubmatchIndex(ch.Title)
		if um == nil || cm == nil {
			continue
		}
		// Both loose matches anchor at the first 第, so the whole-match
		// starts coincide whenever both markers are present. Ordering is
		// decided by the captured marker positions.
		if um[2] > cm[2] {
			count++
			upperMarker := ch.Title[um[2]:um[3]]
			chapterMarker := ch.Title[cm[2]:cm[3]]
			bag.Add(diag.New(
				diag.ReversedHierarchy, diag.SevHigh, idx+1, ch.Title,
				fmt.Sprintf("上层标记 '%s' 在主标记 '%s' 之后", upperMarker, chapterMarker),
			))
		}
	}

	return count
}
