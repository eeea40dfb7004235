package book

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
)

// ErrBadDocument marks documents that parse as JSON but do not carry the
// expected book/chapters shape.
var ErrBadDocument = errors.New("invalid chapter document")

// LoadError associates a load failure with its document path. Failures are
// per-file: the batch driver reports them and moves on.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type rawDocument struct {
	Book     *Meta             `json:"book"`
	Chapters []json.RawMessage `json:"chapters"`
}

// Load reads and parses one chapter document from disk.
func Load(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return Parse(data, path)
}

// Parse parses one chapter document. path is used only for identification
// and error reporting.
func Parse(data []byte, path string) (*Book, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if raw.Book == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: missing book header", ErrBadDocument)}
	}
	if raw.Chapters == nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: missing chapters", ErrBadDocument)}
	}

	chapters := make([]Chapter, 0, len(raw.Chapters))
	for _, rec := range raw.Chapters {
		chapters = append(chapters, parseChapter(rec))
	}

	return &Book{
		ID:       IDFromPath(path),
		Path:     path,
		Meta:     *raw.Book,
		Chapters: chapters,
	}, nil
}

// parseChapter decodes one record, tuple or object form. A record that
// cannot be decoded yields a Chapter with an empty title rather than an
// error; the missing-marker rule classifies it downstream.
func parseChapter(rec json.RawMessage) Chapter {
	trimmed := firstByte(rec)
	switch trimmed {
	case '[':
		return parseTupleChapter(rec)
	case '{':
		return parseObjectChapter(rec)
	default:
		return Chapter{}
	}
}

// Tuple layout: [id, title, start_offset, end_offset, length].
func parseTupleChapter(rec json.RawMessage) Chapter {
	var fields []json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil {
		return Chapter{}
	}
	var ch Chapter
	if len(fields) > 0 {
		ch.ID = decodeStringish(fields[0])
	}
	if len(fields) > 1 {
		var title string
		if err := json.Unmarshal(fields[1], &title); err == nil {
			ch.Title = norm.NFC.String(title)
		}
	}
	if len(fields) > 2 {
		ch.Start = decodeInt(fields[2])
	}
	if len(fields) > 3 {
		ch.End = decodeInt(fields[3])
	}
	if len(fields) > 4 {
		ch.Length = decodeInt(fields[4])
	}
	return ch
}

func parseObjectChapter(rec json.RawMessage) Chapter {
	var obj struct {
		ID     json.RawMessage `json:"id"`
		Title  string          `json:"title"`
		Start  json.RawMessage `json:"start"`
		End    json.RawMessage `json:"end"`
		Length json.RawMessage `json:"length"`
	}
	if err := json.Unmarshal(rec, &obj); err != nil {
		return Chapter{}
	}
	return Chapter{
		ID:     decodeStringish(obj.ID),
		Title:  norm.NFC.String(obj.Title),
		Start:  decodeInt(obj.Start),
		End:    decodeInt(obj.End),
		Length: decodeInt(obj.Length),
	}
}

// decodeStringish accepts string or numeric IDs.
func decodeStringish(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func decodeInt(raw json.RawMessage) int {
	if raw == nil {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	return 0
}

func firstByte(rec json.RawMessage) byte {
	for _, b := range rec {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
