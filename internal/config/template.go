package config

import (
	"fmt"
	"os"
)

// DefaultTemplate is the commented file written by `chaplint init`. Values
// match the built-in defaults; uncomment to override.
const DefaultTemplate = `# chaplint configuration
# Every section is optional; omitted values keep the built-in defaults.

[markers]
# One marker per rune. The two families must not share a rune.
upper = "卷部册季"
chapter = "章节回集篇幕话段折品"

[thresholds]
max_title_length = 80
max_sentence_punct = 3
truncate_width = 60

[whitelist]
# Special section titles that legitimately carry no marker.
titles = ["楔子", "序章", "序言", "引子", "终章", "尾声", "尾记", "后记", "番外", "外传", "全文"]

[report]
top = 20

# Narrative-text heuristics, tried in order; first match wins.
# [[suspicious]]
# pattern = "^[^第\\d]*说[^！？。]*。"
# description = "正文语句（包含'说'并以句号结尾）"
`

// WriteDefault writes the template to path, refusing to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(DefaultTemplate), 0o644)
}
