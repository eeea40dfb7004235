package detect

import (
	"strings"
	"unicode/utf8"

	"chaplint/internal/book"
)

// MarkerCount is one marker's usage tally, counted per title containing the
// marker rune (not per occurrence).
type MarkerCount struct {
	Marker string
	Count  int
}

// Statistics are descriptive aggregates over a title list, recomputed from
// scratch on every call; nothing is cached between invocations.
type Statistics struct {
	TotalChapters  int
	AvgTitleLength float64
	MinTitleLength int
	MaxTitleLength int
	// MarkerUsage lists markers with non-zero usage in taxonomy order
	// (upper markers first), keeping renderers deterministic.
	MarkerUsage             []MarkerCount
	ChaptersWithUpperPrefix int
	// PrefixRatio is ChaptersWithUpperPrefix as a percentage of the total.
	PrefixRatio float64
}

// Statistics aggregates title lengths, marker usage and upper-prefix
// coverage. Lengths are in runes.
func (d *Detector) Statistics(chapters []book.Chapter) Statistics {
	if len(chapters) == 0 {
		return Statistics{}
	}

	stats := Statistics{TotalChapters: len(chapters)}

	total := 0
	stats.MinTitleLength = utf8.RuneCountInString(chapters[0].Title)
	for _, ch := range chapters {
		n := utf8.RuneCountInString(ch.Title)
		total += n
		if n < stats.MinTitleLength {
			stats.MinTitleLength = n
		}
		if n > stats.MaxTitleLength {
			stats.MaxTitleLength = n
		}
		if d.cfg.Markers.ContainsUpper(ch.Title) {
			stats.ChaptersWithUpperPrefix++
		}
	}
	stats.AvgTitleLength = float64(total) / float64(len(chapters))
	stats.PrefixRatio = float64(stats.ChaptersWithUpperPrefix) / float64(len(chapters)) * 100

	for _, m := range d.cfg.Markers.All() {
		count := 0
		for _, ch := range chapters {
			if strings.ContainsRune(ch.Title, m) {
				count++
			}
		}
		if count > 0 {
			stats.MarkerUsage = append(stats.MarkerUsage, MarkerCount{Marker: string(m), Count: count})
		}
	}

	return stats
}
