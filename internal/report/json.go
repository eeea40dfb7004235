package report

import (
	"encoding/json"
	"io"

	"chaplint/internal/detect"
)

// IssueJSON is one issue in serialized form.
type IssueJSON struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Severity string `json:"severity"`
	Chapter  int    `json:"chapter"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
}

// RuleJSON is one check's tally.
type RuleJSON struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatisticsJSON mirrors detect.Statistics with stable field names.
type StatisticsJSON struct {
	TotalChapters           int            `json:"total_chapters"`
	AvgTitleLength          float64        `json:"avg_title_length"`
	MinTitleLength          int            `json:"min_title_length"`
	MaxTitleLength          int            `json:"max_title_length"`
	MarkerUsage             map[string]int `json:"marker_usage"`
	ChaptersWithUpperPrefix int            `json:"chapters_with_upper_prefix"`
	PrefixRatio             float64        `json:"prefix_ratio"`
}

// ReportJSON is the root serialized form of one document's report.
type ReportJSON struct {
	BookID     string         `json:"book_id"`
	File       string         `json:"file"`
	BookTitle  string         `json:"book_title"`
	BookAuthor string         `json:"book_author"`
	Issues     []IssueJSON    `json:"issues"`
	IssueCount int            `json:"issue_count"`
	Checks     []RuleJSON     `json:"checks"`
	Statistics StatisticsJSON `json:"statistics"`
}

// BuildReportJSON converts a Report into its serialized form without
// encoding it. Issues keep emission order; consumers resort as they wish.
func BuildReportJSON(r *Report) ReportJSON {
	items := r.Result.Issues.Items()
	issues := make([]IssueJSON, 0, len(items))
	for _, is := range items {
		issues = append(issues, IssueJSON{
			Type:     is.Kind.String(),
			ID:       is.Kind.ID(),
			Severity: is.Severity.String(),
			Chapter:  is.Chapter,
			Title:    is.Title,
			Detail:   is.Detail,
		})
	}

	checks := make([]RuleJSON, 0, len(r.Result.Rules))
	for _, rr := range r.Result.Rules {
		checks = append(checks, RuleJSON{Name: rr.Name, Count: rr.Count})
	}

	return ReportJSON{
		BookID:     r.BookID,
		File:       r.Path,
		BookTitle:  r.Book.Title,
		BookAuthor: r.Book.Author,
		Issues:     issues,
		IssueCount: r.TotalIssues(),
		Checks:     checks,
		Statistics: buildStatisticsJSON(r.Result.Stats),
	}
}

func buildStatisticsJSON(s detect.Statistics) StatisticsJSON {
	usage := make(map[string]int, len(s.MarkerUsage))
	for _, mc := range s.MarkerUsage {
		usage[mc.Marker] = mc.Count
	}
	return StatisticsJSON{
		TotalChapters:           s.TotalChapters,
		AvgTitleLength:          s.AvgTitleLength,
		MinTitleLength:          s.MinTitleLength,
		MaxTitleLength:          s.MaxTitleLength,
		MarkerUsage:             usage,
		ChaptersWithUpperPrefix: s.ChaptersWithUpperPrefix,
		PrefixRatio:             s.PrefixRatio,
	}
}

// StatsJSON is the serialized form of a statistics-only run.
type StatsJSON struct {
	BookID     string         `json:"book_id"`
	File       string         `json:"file"`
	BookTitle  string         `json:"book_title"`
	BookAuthor string         `json:"book_author"`
	Statistics StatisticsJSON `json:"statistics"`
}

// BuildStatsJSON converts a report into its statistics-only form.
func BuildStatsJSON(r *Report) StatsJSON {
	return StatsJSON{
		BookID:     r.BookID,
		File:       r.Path,
		BookTitle:  r.Book.Title,
		BookAuthor: r.Book.Author,
		Statistics: buildStatisticsJSON(r.Result.Stats),
	}
}

// SummaryJSON is the serialized batch roll-up.
type SummaryJSON struct {
	Books    int     `json:"books"`
	Chapters int     `json:"chapters"`
	Issues   int     `json:"issues"`
	Failures int     `json:"failures"`
	Quality  float64 `json:"quality"`
}

// BuildSummaryJSON converts a Summary into its serialized form.
func BuildSummaryJSON(s Summary) SummaryJSON {
	return SummaryJSON{
		Books:    s.Books,
		Chapters: s.Chapters,
		Issues:   s.Issues,
		Failures: s.Failures,
		Quality:  s.Quality(),
	}
}

// WriteJSON encodes any serialized form with two-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
