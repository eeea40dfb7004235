package detect

import (
	"fmt"
	"strings"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkDuplicateTitles groups entries by exact title text and reports each
// group with more than one member once, anchored at the first occurrence.
// The returned tally counts redundant occurrences (k-1 per group of k), so
// a triplicated title reports one issue but counts as two defects.
func (d *Detector) checkDuplicateTitles(chapters []book.Chapter, bag *diag.Bag) int {
	indices := make(map[string][]int, len(chapters))
	order := make([]string, 0, len(chapters))
	for idx, ch := range chapters {
		if _, seen := indices[ch.Title]; !seen {
			order = append(order, ch.Title)
		}
		indices[ch.Title] = append(indices[ch.Title], idx+1)
	}

	count := 0
	for _, title := range order {
		occ := indices[title]
		if len(occ) < 2 {
			continue
		}
		count += len(occ) - 1

		shown := occ
		if len(shown) > 5 {
			shown = shown[:5]
		}
		parts := make([]string, len(shown))
		for i, n := range shown {
			parts[i] = fmt.Sprintf("%d", n)
		}
		bag.Add(diag.New(
			diag.DuplicateTitle, diag.SevHigh, occ[0], title,
			fmt.Sprintf("重复 %d 次，出现在章节: %s", len(occ), strings.Join(parts, ", ")),
		))
	}
	return count
}
