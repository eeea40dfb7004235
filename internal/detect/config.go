package detect

import (
	"fmt"

	"chaplint/internal/marker"
)

// SuspiciousPattern is one narrative-text heuristic. Expr is matched against
// the title after any leading volume prefix has been stripped; Description
// is the human explanation carried into the issue detail. Patterns are tried
// in order and the first match wins.
type SuspiciousPattern struct {
	Expr        string
	Description string
}

// Config is the immutable rule configuration a Detector is built from.
// Zero thresholds are not defaulted here; use DefaultConfig as the base and
// override fields explicitly.
type Config struct {
	Markers marker.Set

	// MaxTitleLength is the rune length above which a title is flagged.
	MaxTitleLength int
	// MaxSentencePunct is the highest tolerated count of sentence
	// separators in one title.
	MaxSentencePunct int
	// TruncateWidth caps titles quoted inside issues, in runes.
	TruncateWidth int

	// SpecialTitles legitimately carry no marker (prologues, epilogues,
	// side stories and the like); matching is by substring.
	SpecialTitles []string

	Suspicious []SuspiciousPattern
}

// DefaultConfig mirrors the extraction pipeline's checking constants.
func DefaultConfig() Config {
	return Config{
		Markers:          marker.Default(),
		MaxTitleLength:   80,
		MaxSentencePunct: 3,
		TruncateWidth:    60,
		SpecialTitles: []string{
			"楔子", "序章", "序言", "引子", "终章", "尾声",
			"尾记", "后记", "番外", "外传", "全文",
		},
		Suspicious: []SuspiciousPattern{
			{
				Expr:        `^[^第\d]*说[^！？。]*。`,
				Description: "正文语句（包含'说'并以句号结尾）",
			},
			{
				Expr:        `^[是这那][^第]*[了着]。`,
				Description: "疑似正文（以是/这/那开头，包含了/着，以句号结尾）",
			},
			{
				Expr:        `^[^第]*，[^！？。]{0,10}[。！？]`,
				Description: "包含逗号和结束标点的短句",
			},
		},
	}
}

// validate rejects configurations the rule battery cannot run on.
func (c Config) validate() error {
	if err := c.Markers.Validate(); err != nil {
		return err
	}
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("detect config: max title length must be positive, got %d", c.MaxTitleLength)
	}
	if c.MaxSentencePunct < 0 {
		return fmt.Errorf("detect config: max sentence punctuation must not be negative, got %d", c.MaxSentencePunct)
	}
	if c.TruncateWidth <= 0 {
		return fmt.Errorf("detect config: truncate width must be positive, got %d", c.TruncateWidth)
	}
	return nil
}
