package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"chaplint/internal/book"
	"chaplint/internal/detect"
	"chaplint/internal/diag"
	"chaplint/internal/report"
)

// Bump when the payload layout changes; stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// Digest keys cache entries by document content.
type Digest = [sha256.Size]byte

// ReportCache persists finished reports keyed by document content hash, so
// repeated batch runs skip unchanged files. Safe for concurrent use.
type ReportCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	BookID string
	Path   string
	Book   book.Meta
	Issues []diag.Issue
	Rules  []detect.RuleResult
	Stats  detect.Statistics
}

// OpenReportCache initializes the cache at the standard user location
// (XDG_CACHE_HOME or ~/.cache) under app.
func OpenReportCache(app string) (*ReportCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenReportCacheAt(filepath.Join(base, app))
}

// OpenReportCacheAt initializes the cache in an explicit directory.
func OpenReportCacheAt(dir string) (*ReportCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ReportCache{dir: dir}, nil
}

// HashContent computes the cache key for a document's raw bytes.
func HashContent(data []byte) Digest {
	return sha256.Sum256(data)
}

func (c *ReportCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "reports", hex.EncodeToString(key[:])+".mp")
}

// Put serializes a report under its content key. Writes go through a temp
// file and an atomic rename so a crashed run never leaves a torn entry.
func (c *ReportCache) Put(key Digest, r *report.Report) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		BookID: r.BookID,
		Path:   r.Path,
		Book:   r.Book,
		Issues: r.Result.Issues.Items(),
		Rules:  r.Result.Rules,
		Stats:  r.Result.Stats,
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads a cached report. The bool reports a usable hit; schema
// mismatches and decode failures count as misses, not errors.
func (c *ReportCache) Get(key Digest) (*report.Report, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, nil
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}

	bag := diag.NewBag(len(payload.Issues))
	for _, is := range payload.Issues {
		bag.Add(is)
	}
	return &report.Report{
		BookID: payload.BookID,
		Path:   payload.Path,
		Book:   payload.Book,
		Result: &detect.Result{
			Issues: bag,
			Rules:  payload.Rules,
			Stats:  payload.Stats,
		},
	}, true, nil
}

// checkWithCache runs one file through the detector, consulting the cache
// when present. The document is read once; the same bytes feed the hash
// and the parser.
func checkWithCache(det *detect.Detector, path string, maxIssues int, cache *ReportCache) (*report.Report, bool, error) {
	if cache == nil {
		rep, err := CheckFile(det, path, maxIssues)
		return rep, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, &book.LoadError{Path: path, Err: err}
	}
	key := HashContent(data)
	if rep, ok, err := cache.Get(key); err == nil && ok {
		return rep, true, nil
	}

	b, err := book.Parse(data, path)
	if err != nil {
		return nil, false, err
	}
	rep := report.New(b, det.Check(b.Chapters, maxIssues))

	// A failed write only costs the next run a recheck.
	_ = cache.Put(key, rep)

	return rep, false, nil
}
