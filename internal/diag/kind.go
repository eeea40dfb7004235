package diag

import "fmt"

// Kind identifies one anomaly class. Numeric ranges group related checks:
// 1000 structural, 2000 textual, 3000 hierarchy, 4000 marker presence,
// 5000 input/output.
type Kind uint16

const (
	UnknownKind Kind = 0

	// Structural defects from the extraction step.
	MergedHeading  Kind = 1001
	DuplicateTitle Kind = 1002

	// Textual defects: the "title" looks like body text.
	LongTitle       Kind = 2001
	HighPunctuation Kind = 2002
	SuspiciousTitle Kind = 2003

	// Hierarchy defects between upper and chapter markers.
	MultipleUpperMarkers Kind = 3001
	ReversedHierarchy    Kind = 3002

	// Marker presence.
	MissingMarker Kind = 4001

	// Input document failures, carried alongside rule issues so a batch
	// run can report them in one stream.
	LoadError Kind = 5001
)

// String returns the stable snake_case name used in reports and JSON.
func (k Kind) String() string {
	switch k {
	case MergedHeading:
		return "merged_heading"
	case DuplicateTitle:
		return "duplicate_title"
	case LongTitle:
		return "long_title"
	case HighPunctuation:
		return "high_punctuation"
	case SuspiciousTitle:
		return "suspicious_title"
	case MultipleUpperMarkers:
		return "multiple_upper_markers"
	case ReversedHierarchy:
		return "reversed_hierarchy"
	case MissingMarker:
		return "missing_marker"
	case LoadError:
		return "load_error"
	}
	return "unknown"
}

// ID returns the short range-prefixed identifier, e.g. STR1001.
func (k Kind) ID() string {
	switch ic := int(k); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("TXT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("HIE%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("MRK%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "K0000"
}
