package detect

import (
	"fmt"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkPunctuationDensity flags titles dense in sentence separators
// (，。、；), the signature of body text misread as a heading. Titles
// carrying an upper marker are skipped outright since volume introductions
// run long legitimately, and a trailing run of emphasis punctuation (！？,
// full- or half-width) is stripped first because it is common in real
// titles.
func (d *Detector) checkPunctuationDensity(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0
	for idx, ch := range chapters {
		if d.cfg.Markers.ContainsUpper(ch.Title) {
			continue
		}
		cleaned := d.trailingEmphasis.ReplaceAllString(ch.Title, "")
		matches := d.sentencePunct.FindAllString(cleaned, -1)
		if len(matches) > d.cfg.MaxSentencePunct {
			count++
			bag.Add(diag.New(
				diag.HighPunctuation, diag.SevMedium, idx+1, ch.Title,
				fmt.Sprintf("包含 %d 个句子标点", len(matches)),
			))
		}
	}
	return count
}
