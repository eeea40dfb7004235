package detect

import (
	"strings"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// checkMissingMarkers flags titles carrying neither a marker rune nor any
// whitelisted special-section substring (prologue, epilogue, side story and
// friends). An entry whose title could not be read at ingestion has an
// empty title and lands here too, which is the intended fallthrough for
// records without recognizable structure.
func (d *Detector) checkMissingMarkers(chapters []book.Chapter, bag *diag.Bag) int {
	count := 0
	for idx, ch := range chapters {
		if containsAnySpecial(ch.Title, d.cfg.SpecialTitles) {
			continue
		}
		if d.cfg.Markers.ContainsAny(ch.Title) {
			continue
		}
		count++
		bag.Add(diag.New(
			diag.MissingMarker, diag.SevMedium, idx+1, ch.Title,
			"标题中未发现章节标记",
		))
	}
	return count
}

func containsAnySpecial(title string, specials []string) bool {
	for _, s := range specials {
		if s != "" && strings.Contains(title, s) {
			return true
		}
	}
	return false
}
