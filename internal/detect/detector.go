// Package detect implements the rule battery over extracted chapter titles:
// seven independent heuristic checks plus descriptive statistics. Rules do
// not depend on each other; the fixed execution order exists only to keep
// issue lists deterministic. Every heuristic here is approximate on purpose
// (see the suspicious patterns and the position-based hierarchy check) and
// trades occasional false positives for catching real extraction defects.
package detect

import (
	"fmt"
	"regexp"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

// Detector runs the rule battery. It is immutable after New and safe for
// concurrent use: checks only read the compiled patterns.
type Detector struct {
	cfg Config

	canonChapter     *regexp.Regexp
	canonUpper       *regexp.Regexp
	looseUpper       *regexp.Regexp
	looseChapter     *regexp.Regexp
	trailingEmphasis *regexp.Regexp
	sentencePunct    *regexp.Regexp
	upperPrefixes    []*regexp.Regexp
	suspicious       []compiledPattern
}

type compiledPattern struct {
	re          *regexp.Regexp
	description string
}

// RuleResult is the issue tally of one named check. For duplicate titles
// the tally counts redundant occurrences (k-1 per group), not issue
// records, matching the per-occurrence bookkeeping of the pipeline.
type RuleResult struct {
	Name  string
	Count int
}

// Result is the full outcome of one Check call.
type Result struct {
	Issues *diag.Bag
	Rules  []RuleResult
	Stats  Statistics
}

// TotalIssues returns the aggregate tally across all rules.
func (r *Result) TotalIssues() int {
	total := 0
	for _, rr := range r.Rules {
		total += rr.Count
	}
	return total
}

// New compiles a Detector from cfg.
func New(cfg Config) (*Detector, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &Detector{cfg: cfg}

	var err error
	if d.canonChapter, err = regexp.Compile(cfg.Markers.CanonicalChapterExpr()); err != nil {
		return nil, fmt.Errorf("compile chapter pattern: %w", err)
	}
	if d.canonUpper, err = regexp.Compile(cfg.Markers.CanonicalUpperExpr()); err != nil {
		return nil, fmt.Errorf("compile upper pattern: %w", err)
	}
	if d.looseUpper, err = regexp.Compile(cfg.Markers.LooseUpperExpr()); err != nil {
		return nil, fmt.Errorf("compile loose upper pattern: %w", err)
	}
	if d.looseChapter, err = regexp.Compile(cfg.Markers.LooseChapterExpr()); err != nil {
		return nil, fmt.Errorf("compile loose chapter pattern: %w", err)
	}
	d.trailingEmphasis = regexp.MustCompile(`[！!？?]+$`)
	d.sentencePunct = regexp.MustCompile(`[，。、；]`)

	for _, expr := range cfg.Markers.UpperPrefixExprs() {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("compile upper prefix pattern: %w", err)
		}
		d.upperPrefixes = append(d.upperPrefixes, re)
	}
	for _, p := range cfg.Suspicious {
		re, err := regexp.Compile(p.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile suspicious pattern %q: %w", p.Expr, err)
		}
		d.suspicious = append(d.suspicious, compiledPattern{re: re, description: p.Description})
	}

	return d, nil
}

// Config returns the configuration the Detector was built from.
func (d *Detector) Config() Config { return d.cfg }

// Check runs every rule in the fixed order, then computes statistics.
// chapters is read-only; indices in issues are 1-based file order.
func (d *Detector) Check(chapters []book.Chapter, maxIssues int) *Result {
	bag := diag.NewBag(maxIssues)

	rules := []RuleResult{
		{Name: "合并标题", Count: d.checkMergedHeadings(chapters, bag)},
		{Name: "重复标题", Count: d.checkDuplicateTitles(chapters, bag)},
		{Name: "异常长度", Count: d.checkTitleLength(chapters, bag)},
		{Name: "标点密度", Count: d.checkPunctuationDensity(chapters, bag)},
		{Name: "层级问题", Count: d.checkHierarchy(chapters, bag)},
		{Name: "缺少标记", Count: d.checkMissingMarkers(chapters, bag)},
		{Name: "可疑标题", Count: d.checkSuspiciousTitles(chapters, bag)},
	}

	return &Result{
		Issues: bag,
		Rules:  rules,
		Stats:  d.Statistics(chapters),
	}
}

// truncateTitle caps a quoted title at the configured rune width with a
// trailing ellipsis.
func (d *Detector) truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= d.cfg.TruncateWidth {
		return title
	}
	return string(runes[:d.cfg.TruncateWidth]) + "..."
}
