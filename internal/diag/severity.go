package diag

// Severity defines the importance of an issue.
type Severity uint8

const (
	// SevLow is reserved; no current rule emits it. Kept so the scale can
	// grow downward without renumbering.
	SevLow Severity = iota
	// SevMedium marks issues that usually need a human look.
	SevMedium
	SevHigh
)

func (s Severity) String() string {
	switch s {
	case SevLow:
		return "low"
	case SevMedium:
		return "medium"
	case SevHigh:
		return "high"
	}
	return "unknown"
}
