package diag

// Issue is one detected anomaly. Chapter is the 1-based index of the
// offending entry in file order; Title is the entry title as shown to the
// user (possibly truncated by the emitting rule). Issues are immutable once
// created; renderers in internal/report own their serialized shapes.
type Issue struct {
	Kind     Kind
	Severity Severity
	Chapter  int
	Title    string
	Detail   string
}

// New constructs an Issue.
func New(kind Kind, sev Severity, chapter int, title, detail string) Issue {
	return Issue{
		Kind:     kind,
		Severity: sev,
		Chapter:  chapter,
		Title:    title,
		Detail:   detail,
	}
}
