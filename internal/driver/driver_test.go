package driver

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"chaplint/internal/detect"
)

const goodDoc = `{
  "book": {"title": "测试书", "author": "佚名"},
  "chapters": [
    ["1", "第一章 初入江湖", 0, 10, 10],
    ["2", "引言说明", 10, 20, 10]
  ]
}`

const cleanDoc = `{
  "book": {"title": "另一本", "author": "无名"},
  "chapters": [["1", "第一章 开端", 0, 10, 10]]
}`

func newDetector(t *testing.T) *detect.Detector {
	t.Helper()
	d, err := detect.New(detect.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestListChapterFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_chapters.json", goodDoc)
	writeFile(t, dir, "a_chapters.json", goodDoc)
	writeFile(t, dir, "notes.json", "{}")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "c_chapters.json", goodDoc)

	files, err := ListChapterFiles(dir)
	if err != nil {
		t.Fatalf("ListChapterFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a_chapters.json"),
		filepath.Join(dir, "b_chapters.json"),
		filepath.Join(sub, "c_chapters.json"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "shu_chapters.json", goodDoc)

	rep, err := CheckFile(newDetector(t), path, 0)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if rep.BookID != "shu" {
		t.Errorf("book id = %q", rep.BookID)
	}
	if rep.TotalIssues() != 1 {
		t.Errorf("issues = %d, want 1 (missing marker)", rep.TotalIssues())
	}
}

func TestCheckDirIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_chapters.json", goodDoc)
	writeFile(t, dir, "b_chapters.json", "broken {")
	writeFile(t, dir, "c_chapters.json", cleanDoc)

	results, err := CheckDir(context.Background(), newDetector(t), dir, Options{Jobs: 2})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	// File order regardless of scheduling.
	if filepath.Base(results[0].Path) != "a_chapters.json" ||
		filepath.Base(results[1].Path) != "b_chapters.json" ||
		filepath.Base(results[2].Path) != "c_chapters.json" {
		t.Fatalf("result order wrong: %v", results)
	}

	if results[0].Err != nil || results[0].Report == nil {
		t.Errorf("first file should succeed: %+v", results[0])
	}
	if results[1].Err == nil || results[1].Report != nil {
		t.Errorf("broken file should fail without a report: %+v", results[1])
	}
	if results[2].Err != nil {
		t.Errorf("file after the broken one should still succeed: %+v", results[2])
	}

	s := Summarize(results)
	if s.Books != 2 || s.Failures != 1 || s.Chapters != 3 || s.Issues != 1 {
		t.Errorf("summary = %+v", s)
	}
}

func TestCheckDirEmpty(t *testing.T) {
	results, err := CheckDir(context.Background(), newDetector(t), t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %v", results)
	}
}

func TestCheckDirEvents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_chapters.json", goodDoc)
	writeFile(t, dir, "b_chapters.json", "broken {")

	events := make(chan Event, 16)
	collected := make(chan []Event, 1)
	go func() {
		var evs []Event
		for ev := range events {
			evs = append(evs, ev)
		}
		collected <- evs
	}()

	if _, err := CheckDir(context.Background(), newDetector(t), dir, Options{Jobs: 1, Events: events}); err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	evs := <-collected
	byStage := map[Stage]int{}
	for _, ev := range evs {
		byStage[ev.Stage]++
	}
	if byStage[StageQueued] != 2 || byStage[StageChecking] != 2 {
		t.Errorf("stage counts = %v", byStage)
	}
	if byStage[StageDone] != 1 || byStage[StageFailed] != 1 {
		t.Errorf("terminal stages = %v", byStage)
	}
}

func TestReportCacheRoundTrip(t *testing.T) {
	cache, err := OpenReportCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenReportCacheAt: %v", err)
	}
	det := newDetector(t)
	path := writeFile(t, t.TempDir(), "shu_chapters.json", goodDoc)

	rep1, fromCache, err := checkWithCache(det, path, 0, cache)
	if err != nil {
		t.Fatalf("first check: %v", err)
	}
	if fromCache {
		t.Fatal("first check cannot be a cache hit")
	}

	rep2, fromCache, err := checkWithCache(det, path, 0, cache)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if !fromCache {
		t.Fatal("second check should hit the cache")
	}

	if rep2.BookID != rep1.BookID {
		t.Errorf("book id = %q, want %q", rep2.BookID, rep1.BookID)
	}
	if !reflect.DeepEqual(rep2.Result.Issues.Items(), rep1.Result.Issues.Items()) {
		t.Errorf("cached issues differ:\n%+v\n%+v", rep2.Result.Issues.Items(), rep1.Result.Issues.Items())
	}
	if !reflect.DeepEqual(rep2.Result.Stats, rep1.Result.Stats) {
		t.Errorf("cached stats differ")
	}
	if !reflect.DeepEqual(rep2.Result.Rules, rep1.Result.Rules) {
		t.Errorf("cached rule tallies differ")
	}
}

func TestReportCacheContentKeyed(t *testing.T) {
	cache, err := OpenReportCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	det := newDetector(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "shu_chapters.json", goodDoc)

	if _, _, err := checkWithCache(det, path, 0, cache); err != nil {
		t.Fatal(err)
	}

	// Changing the content invalidates the entry.
	writeFile(t, dir, "shu_chapters.json", cleanDoc)
	rep, fromCache, err := checkWithCache(det, path, 0, cache)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Fatal("changed content must miss the cache")
	}
	if rep.Book.Title != "另一本" {
		t.Errorf("report built from stale content: %+v", rep.Book)
	}
}
