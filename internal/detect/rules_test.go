package detect

import (
	"strings"
	"testing"

	"chaplint/internal/book"
	"chaplint/internal/diag"
)

func newDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func entries(titles ...string) []book.Chapter {
	chapters := make([]book.Chapter, len(titles))
	for i, title := range titles {
		chapters[i] = book.Chapter{ID: "", Title: title}
	}
	return chapters
}

// issuesOf runs one full check and filters by kind.
func issuesOf(t *testing.T, d *Detector, kind diag.Kind, titles ...string) []diag.Issue {
	t.Helper()
	res := d.Check(entries(titles...), 0)
	var out []diag.Issue
	for _, is := range res.Issues.Items() {
		if is.Kind == kind {
			out = append(out, is)
		}
	}
	return out
}

func TestMergedHeadings(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		title  string
		want   int
		detail string
	}{
		{"第一章 初入江湖", 0, ""},
		{"第一章 初入江湖第二章 再战群雄", 1, "发现 2 个章节标记"},
		{"第1回 上第2回 中第3回 下", 1, "发现 3 个章节标记"},
		// Upper + chapter marker is a combined heading, not a merge.
		{"第二卷 第一章 风起", 0, ""},
		// Bare marker runes in prose do not form occurrences.
		{"章节之间的故事", 0, ""},
	}
	for _, tt := range tests {
		got := issuesOf(t, d, diag.MergedHeading, tt.title)
		if len(got) != tt.want {
			t.Errorf("%q: %d merged issues, want %d", tt.title, len(got), tt.want)
			continue
		}
		if tt.want == 1 {
			if got[0].Detail != tt.detail {
				t.Errorf("%q: detail = %q, want %q", tt.title, got[0].Detail, tt.detail)
			}
			if got[0].Severity != diag.SevHigh {
				t.Errorf("%q: severity = %s, want high", tt.title, got[0].Severity)
			}
		}
	}
}

func TestDuplicateTitles(t *testing.T) {
	d := newDetector(t)

	titles := make([]string, 12)
	for i := range titles {
		titles[i] = "第" + string(rune('0'+i)) + "章 占位"
	}
	titles[4] = "第三章 对决"
	titles[11] = "第三章 对决"

	got := issuesOf(t, d, diag.DuplicateTitle, titles...)
	if len(got) != 1 {
		t.Fatalf("%d duplicate issues, want 1", len(got))
	}
	is := got[0]
	if is.Chapter != 5 {
		t.Errorf("chapter = %d, want first occurrence 5", is.Chapter)
	}
	if want := "重复 2 次，出现在章节: 5, 12"; is.Detail != want {
		t.Errorf("detail = %q, want %q", is.Detail, want)
	}
}

func TestDuplicateBookkeeping(t *testing.T) {
	d := newDetector(t)

	// A group of 3 yields one issue record but tallies 2.
	res := d.Check(entries("第一章 同名", "第一章 同名", "第一章 同名"), 0)
	if got := res.Issues.CountByKind(diag.DuplicateTitle); got != 1 {
		t.Fatalf("issue records = %d, want 1", got)
	}
	for _, rr := range res.Rules {
		if rr.Name == "重复标题" && rr.Count != 2 {
			t.Fatalf("duplicate tally = %d, want k-1 = 2", rr.Count)
		}
	}
}

func TestDuplicateListCapsAtFive(t *testing.T) {
	d := newDetector(t)
	titles := make([]string, 7)
	for i := range titles {
		titles[i] = "第一章 重复"
	}
	got := issuesOf(t, d, diag.DuplicateTitle, titles...)
	if len(got) != 1 {
		t.Fatalf("%d issues, want 1", len(got))
	}
	if want := "重复 7 次，出现在章节: 1, 2, 3, 4, 5"; got[0].Detail != want {
		t.Errorf("detail = %q, want %q", got[0].Detail, want)
	}
}

func TestTitleLength(t *testing.T) {
	d := newDetector(t)

	long := "第一章 " + strings.Repeat("剑", 91) // 95 runes total
	got := issuesOf(t, d, diag.LongTitle, long)
	if len(got) != 1 {
		t.Fatalf("%d long-title issues, want 1", len(got))
	}
	is := got[0]
	if want := "标题长度 95 字符"; is.Detail != want {
		t.Errorf("detail = %q, want %q", is.Detail, want)
	}
	if want := string([]rune(long)[:60]) + "..."; is.Title != want {
		t.Errorf("quoted title not truncated to 60 runes: %q", is.Title)
	}

	// Exactly at the threshold passes.
	exact := strings.Repeat("章", 80)
	if got := issuesOf(t, d, diag.LongTitle, exact); len(got) != 0 {
		t.Errorf("80-rune title flagged")
	}
}

func TestPunctuationDensity(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		name   string
		title  string
		want   int
		detail string
	}{
		{"dense body text", "第一章 他来了，他看了，他走了。然后，一切归零。", 1, "包含 5 个句子标点"},
		{"at threshold", "第一章 一，二，三，完", 0, ""},
		{"trailing emphasis ignored", "第一章 谁与争锋！！？", 0, ""},
		{"upper marker skips check", "第二卷 楔子，一，二，三。四。", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issuesOf(t, d, diag.HighPunctuation, tt.title)
			if len(got) != tt.want {
				t.Fatalf("%d issues, want %d", len(got), tt.want)
			}
			if tt.want == 1 && got[0].Detail != tt.detail {
				t.Errorf("detail = %q, want %q", got[0].Detail, tt.detail)
			}
		})
	}
}

func TestSuspiciousTitles(t *testing.T) {
	d := newDetector(t)
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		title string
		want  string // matched description, "" for clean
	}{
		{"well-formed", "第一章 初入江湖", ""},
		{"speech verb sentence", "二话不说。直接冲了上去", cfg.Suspicious[0].Description},
		{"demonstrative narrative", "这一天就这样过去了。", cfg.Suspicious[1].Description},
		{"comma short sentence", "风雨欲来，满城皆惊。", cfg.Suspicious[2].Description},
		// The volume prefix is stripped before matching.
		{"stripped upper prefix", "第二卷 他说完就走了。", cfg.Suspicious[0].Description},
		// Matching both the speech and comma patterns reports only the first.
		{"first match wins", "他说，走吧。", cfg.Suspicious[0].Description},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issuesOf(t, d, diag.SuspiciousTitle, tt.title)
			if tt.want == "" {
				if len(got) != 0 {
					t.Fatalf("unexpected issues: %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("%d issues, want 1", len(got))
			}
			if got[0].Detail != tt.want {
				t.Errorf("detail = %q, want %q", got[0].Detail, tt.want)
			}
		})
	}
}

func TestHierarchy(t *testing.T) {
	d := newDetector(t)

	t.Run("well formed order", func(t *testing.T) {
		if got := issuesOf(t, d, diag.ReversedHierarchy, "第二卷 第一章 风起"); len(got) != 0 {
			t.Fatalf("unexpected issues: %+v", got)
		}
	})

	t.Run("reversed order", func(t *testing.T) {
		got := issuesOf(t, d, diag.ReversedHierarchy, "第一章 第二卷 风起")
		if len(got) != 1 {
			t.Fatalf("%d issues, want 1", len(got))
		}
		if want := "上层标记 '卷' 在主标记 '章' 之后"; got[0].Detail != want {
			t.Errorf("detail = %q, want %q", got[0].Detail, want)
		}
		if got[0].Severity != diag.SevHigh {
			t.Errorf("severity = %s, want high", got[0].Severity)
		}
	})

	t.Run("multiple upper markers", func(t *testing.T) {
		got := issuesOf(t, d, diag.MultipleUpperMarkers, "第一卷 第二部 合订")
		if len(got) != 1 {
			t.Fatalf("%d issues, want 1", len(got))
		}
		if want := "包含多个上层标记: 卷, 部"; got[0].Detail != want {
			t.Errorf("detail = %q, want %q", got[0].Detail, want)
		}
	})

	t.Run("single upper marker clean", func(t *testing.T) {
		if got := issuesOf(t, d, diag.MultipleUpperMarkers, "第二卷 风起"); len(got) != 0 {
			t.Fatalf("unexpected issues: %+v", got)
		}
	})
}

func TestMissingMarkers(t *testing.T) {
	d := newDetector(t)

	tests := []struct {
		title string
		want  int
	}{
		{"楔子", 0},
		{"番外 如果重来", 0},
		{"第一章 初入江湖", 0},
		// 部 is an upper marker, so its presence counts as having
		// a marker even mid-word.
		{"引言部分说明", 0},
		{"引言说明", 1},
		{"", 1},
	}
	for _, tt := range tests {
		got := issuesOf(t, d, diag.MissingMarker, tt.title)
		if len(got) != tt.want {
			t.Errorf("%q: %d missing-marker issues, want %d", tt.title, len(got), tt.want)
		}
		if tt.want == 1 && len(got) == 1 {
			if want := "标题中未发现章节标记"; got[0].Detail != want {
				t.Errorf("%q: detail = %q", tt.title, got[0].Detail)
			}
		}
	}
}
