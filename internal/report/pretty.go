package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"chaplint/internal/diag"
)

// PrettyOpts configures console rendering.
type PrettyOpts struct {
	// Top caps the number of issue detail blocks; 0 means the default.
	Top int
	// ShowStats toggles the statistics block.
	ShowStats bool
	// Quiet drops everything except the verdict line.
	Quiet bool
	// TitleWidth caps quoted titles by display cells; 0 means no cap.
	TitleWidth int
}

// DefaultTop is the issue detail cap when PrettyOpts.Top is zero.
const DefaultTop = 20

const rule = "======================================================================"

var (
	highColor   = color.New(color.FgRed)
	mediumColor = color.New(color.FgYellow)
	lowColor    = color.New(color.FgGreen)
	headerColor = color.New(color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevHigh:
		return highColor
	case diag.SevMedium:
		return mediumColor
	default:
		return lowColor
	}
}

func severityIcon(sev diag.Severity) string {
	switch sev {
	case diag.SevHigh:
		return "🔴"
	case diag.SevMedium:
		return "🟡"
	default:
		return "🟢"
	}
}

// Pretty renders one report in the console layout: header, statistics,
// per-check tallies, then issue details sorted by severity and chapter.
func Pretty(w io.Writer, r *Report, opts PrettyOpts) {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}

	if !opts.Quiet {
		fmt.Fprintf(w, "\n%s\n", rule)
		headerColor.Fprintf(w, "📚 检查书籍: %s - %s\n", r.Book.Title, r.Book.Author)
		fmt.Fprintf(w, "   文件: %s\n", filepath.Base(r.Path))
		fmt.Fprintf(w, "%s\n", rule)

		if opts.ShowStats {
			prettyStats(w, r)
		}
		prettyRules(w, r)
		prettyIssues(w, r, top, opts.TitleWidth)
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	verdict(w, r.TotalIssues())
	fmt.Fprintf(w, "%s\n\n", rule)
}

// PrettyStatistics renders the header and statistics block without running
// any check output, for statistics-only invocations.
func PrettyStatistics(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n%s\n", rule)
	headerColor.Fprintf(w, "📚 书籍: %s - %s\n", r.Book.Title, r.Book.Author)
	fmt.Fprintf(w, "   文件: %s\n", filepath.Base(r.Path))
	fmt.Fprintf(w, "%s\n", rule)
	prettyStats(w, r)
	fmt.Fprintln(w)
}

func prettyStats(w io.Writer, r *Report) {
	stats := r.Result.Stats
	fmt.Fprintf(w, "\n📊 统计信息:\n")
	fmt.Fprintf(w, "   总章节数: %d\n", stats.TotalChapters)
	fmt.Fprintf(w, "   平均标题长度: %.1f 字符\n", stats.AvgTitleLength)
	fmt.Fprintf(w, "   标题长度范围: %d - %d\n", stats.MinTitleLength, stats.MaxTitleLength)
	if len(stats.MarkerUsage) > 0 {
		parts := make([]string, len(stats.MarkerUsage))
		for i, mc := range stats.MarkerUsage {
			parts[i] = fmt.Sprintf("%s(%d)", mc.Marker, mc.Count)
		}
		fmt.Fprintf(w, "   使用的标记: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(w, "   带上层前缀的章节: %d (%.1f%%)\n",
		stats.ChaptersWithUpperPrefix, stats.PrefixRatio)
}

func prettyRules(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n🔍 检查结果:\n")
	for _, rr := range r.Result.Rules {
		status := "✅"
		switch {
		case rr.Count >= 5:
			status = "❌"
		case rr.Count > 0:
			status = "⚠️"
		}
		fmt.Fprintf(w, "   %s %s: %d\n", status, rr.Name, rr.Count)
	}
}

func prettyIssues(w io.Writer, r *Report, top, titleWidth int) {
	issues := r.Result.Issues
	if issues.Len() == 0 {
		fmt.Fprintf(w, "\n✨ 未发现问题！\n")
		return
	}

	fmt.Fprintf(w, "\n📋 问题详情 (共 %d 个):\n", issues.Len())
	sorted := issues.SortedForDisplay()
	shown := sorted
	if len(shown) > top {
		shown = shown[:top]
	}
	for _, is := range shown {
		c := severityColor(is.Severity)
		fmt.Fprintf(w, "   %s %s\n", severityIcon(is.Severity),
			c.Sprintf("章节 %d: %s [%s]", is.Chapter, is.Kind, is.Kind.ID()))
		fmt.Fprintf(w, "      标题: %s\n", displayTitle(is.Title, titleWidth))
		fmt.Fprintf(w, "      说明: %s\n", is.Detail)
	}
	if len(sorted) > top {
		fmt.Fprintf(w, "   ... 还有 %d 个问题未显示\n", len(sorted)-top)
	}
}

func verdict(w io.Writer, total int) {
	switch {
	case total == 0:
		fmt.Fprintln(w, "✅ 检查通过！章节数据质量良好。")
	case total < 10:
		fmt.Fprintf(w, "⚠️  发现 %d 个问题，建议检查。\n", total)
	default:
		fmt.Fprintf(w, "❌ 发现 %d 个问题，需要处理。\n", total)
	}
}

// displayTitle caps a title by display cells, CJK runes counting double.
func displayTitle(title string, width int) string {
	if width <= 0 {
		return title
	}
	return runewidth.Truncate(title, width, "…")
}

// PrettyLoadFailure renders one skipped document.
func PrettyLoadFailure(w io.Writer, path string, err error) {
	highColor.Fprintf(w, "❌ 加载失败 %s: %v\n", filepath.Base(path), err)
}

// PrettySummary renders the cross-document batch roll-up.
func PrettySummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\n%s\n", rule)
	headerColor.Fprintln(w, "📊 总体汇总")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "总书籍数: %d\n", s.Books)
	fmt.Fprintf(w, "总章节数: %d\n", s.Chapters)
	fmt.Fprintf(w, "总问题数: %d\n", s.Issues)
	if s.Failures > 0 {
		highColor.Fprintf(w, "加载失败: %d\n", s.Failures)
	}
	fmt.Fprintf(w, "平均质量: %.1f%%\n", s.Quality())
	fmt.Fprintf(w, "%s\n\n", rule)
}
