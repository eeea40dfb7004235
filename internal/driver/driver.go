// Package driver runs the checker over files: single documents or whole
// directories of *_chapters.json. Directory batches fan out over a worker
// pool; every file owns its bag, report and statistics, so workers share
// nothing mutable. A file that fails to load occupies its result slot with
// the error and never disturbs its neighbours.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"chaplint/internal/book"
	"chaplint/internal/detect"
	"chaplint/internal/report"
)

// Options configures a directory batch.
type Options struct {
	// Jobs is the worker-pool size; 0 means GOMAXPROCS.
	Jobs int
	// MaxIssues caps each file's issue bag; 0 means unlimited.
	MaxIssues int
	// Cache, when non-nil, short-circuits unchanged files.
	Cache *ReportCache
	// Events, when non-nil, receives per-file progress events. The channel
	// is closed by CheckDir when the batch finishes.
	Events chan<- Event
}

// FileResult is one file's slot in a batch: either a report or the load
// error that suppressed it.
type FileResult struct {
	Path      string
	Report    *report.Report
	Err       error
	FromCache bool
}

// ListChapterFiles returns every *_chapters.json under dir, sorted for a
// deterministic batch order.
func ListChapterFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, book.FileSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckFile loads and checks a single document.
func CheckFile(det *detect.Detector, path string, maxIssues int) (*report.Report, error) {
	b, err := book.Load(path)
	if err != nil {
		return nil, err
	}
	return report.New(b, det.Check(b.Chapters, maxIssues)), nil
}

// CheckDir checks every chapter document under dir. The returned slice is
// in file order regardless of worker scheduling. The error return is
// reserved for walking failures and context cancellation; per-file load
// failures live in their result slots.
func CheckDir(ctx context.Context, det *detect.Detector, dir string, opts Options) ([]FileResult, error) {
	files, err := ListChapterFiles(dir)
	if err != nil {
		return nil, err
	}
	if opts.Events != nil {
		defer close(opts.Events)
		for _, path := range files {
			opts.Events <- Event{Path: path, Stage: StageQueued}
		}
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Slots are indexed per goroutine; no locking needed.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			emit(opts.Events, Event{Path: path, Stage: StageChecking})

			rep, fromCache, err := checkWithCache(det, path, opts.MaxIssues, opts.Cache)
			results[i] = FileResult{Path: path, Report: rep, Err: err, FromCache: fromCache}

			if err != nil {
				emit(opts.Events, Event{Path: path, Stage: StageFailed, Err: err})
				return nil
			}
			emit(opts.Events, Event{Path: path, Stage: StageDone, Issues: rep.TotalIssues()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Summarize folds batch results into the cross-document roll-up.
func Summarize(results []FileResult) report.Summary {
	var s report.Summary
	for _, fr := range results {
		if fr.Err != nil {
			s.Failures++
			continue
		}
		s.Add(fr.Report)
	}
	return s
}
