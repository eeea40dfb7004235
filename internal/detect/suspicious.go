package detect

import (
	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkSuspiciousTitles catches narrative sentences misread as headings
// that slip under the punctuation-density threshold. The leading volume
// prefix, if any, is stripped so a legitimate "第二卷 ..." opener does not
// shield the remainder; then the configured narrative patterns are tried in
// order and the first match wins. The patterns are shape heuristics, not a
// grammar, and are kept deliberately loose.
func (d *Detector) checkSuspiciousTitles(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0
	for idx, ch := range chapters {
		remainder := ch.Title
		for _, re := range d.upperPrefixes {
			remainder = re.ReplaceAllString(remainder, "")
		}

		for _, p := range d.suspicious {
			if p.re.MatchString(remainder) {
				count++
				bag.Add(diag.New(
					diag.SuspiciousTitle, diag.SevMedium, idx+1, ch.Title,
					p.description,
				))
				break
			}
		}
	}
	return count
}
