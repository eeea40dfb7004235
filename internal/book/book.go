// Package book loads chapter documents produced by the extraction pipeline.
// A document is JSON with a book header and an ordered chapter list; chapter
// records arrive either as 5-tuples [id, title, start, end, length] or as
// objects with the same fields. Shape is validated here, at the ingestion
// boundary, so the rule checks downstream never see an untyped record.
package book

import (
	"path/filepath"
	"strings"
)

// Meta is the book header of a chapter document.
type Meta struct {
	Title  string `json:"title" msgpack:"title"`
	Author string `json:"author" msgpack:"author"`
}

// Chapter is one extracted chapter record. Only Title is consumed by the
// rule checks; offsets are carried through for renderers and future tooling.
// A record whose title could not be read keeps an empty Title and is
// classified by the rules as carrying no recognizable structure.
type Chapter struct {
	ID     string `msgpack:"id"`
	Title  string `msgpack:"title"`
	Start  int    `msgpack:"start"`
	End    int    `msgpack:"end"`
	Length int    `msgpack:"length"`
}

// Book is one parsed chapter document.
type Book struct {
	ID       string
	Path     string
	Meta     Meta
	Chapters []Chapter
}

// FileSuffix is the naming convention for chapter documents.
const FileSuffix = "_chapters.json"

// IDFromPath derives the book identifier from a document path:
// the base name with the _chapters.json suffix removed.
func IDFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, FileSuffix)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base
}
