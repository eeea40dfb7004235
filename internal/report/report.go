// Package report assembles and renders the per-book check outcome. The
// renderers never mutate the underlying result: severity-sorted views are
// built on copies, so a Report can be rendered any number of times in any
// format with identical output.
package report

import (
	"chaplint/internal/book"
	"chaplint/internal/detect"
)

// Report is the complete outcome for one processed document: identity,
// issues and statistics. It lives for one render and is not persisted,
// except through the optional driver cache.
type Report struct {
	BookID string
	Path   string
	Book   book.Meta
	Result *detect.Result
}

// New assembles a Report from a parsed book and its check result.
func New(b *book.Book, res *detect.Result) *Report {
	return &Report{
		BookID: b.ID,
		Path:   b.Path,
		Book:   b.Meta,
		Result: res,
	}
}

// TotalIssues is the aggregate per-occurrence tally.
func (r *Report) TotalIssues() int {
	return r.Result.TotalIssues()
}

// Summary aggregates a batch run across documents.
type Summary struct {
	Books    int
	Chapters int
	Issues   int
	Failures int
}

// Quality is the batch quality percentage: one minus issues per chapter.
func (s Summary) Quality() float64 {
	chapters := s.Chapters
	if chapters < 1 {
		chapters = 1
	}
	return (1 - float64(s.Issues)/float64(chapters)) * 100
}

// Add folds one report into the summary.
func (s *Summary) Add(r *Report) {
	s.Books++
	s.Chapters += r.Result.Stats.TotalChapters
	s.Issues += r.TotalIssues()
}
