package detect

import (
	"fmt"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkMergedHeadings flags titles gluing two or more chapter headings
// together, the typical symptom of a missed boundary in extraction. Only
// canonical chapter-marker occurrences count: a volume marker next to a
// chapter marker is a legitimate combined heading, not a merge.
func (d *Detector) checkMergedHeadings(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0
	for idx, ch := range chapters {
		matches := d.canonChapter.FindAllString(ch.Title, -1)
		if len(matches) > 1 {
			count++
			bag.Add(diag.New(
				diag.MergedHeading, diag.SevHigh, idx+1, ch.Title,
				fmt.Sprintf("发现 %d 个章节标记", len(matches)),
			))
		}
	}
	return count
}
