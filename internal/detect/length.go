package detect

import (
	"fmt"
	"unicode/utf8"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkTitleLength flags titles longer than the configured rune threshold.
// The quoted title is truncated so a runaway extraction artifact cannot
// flood the report.
func (d *Detector) checkTitleLength(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0
	for idx, ch := range chapters {
		n := utf8.RuneCountInString(ch.Title)
		if n > d.cfg.MaxTitleLength {
			count++
			bag.Add(diag.New(
				diag.LongTitle, diag.SevMedium, idx+1, d.truncateTitle(ch.Title),
				fmt.Sprintf("标题长度 %d 字符", n),
			))
		}
	}
	return count
}
