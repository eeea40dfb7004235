package driver

// Stage is a file's position in the batch lifecycle.
type Stage uint8

const (
	StageQueued Stage = iota
	StageChecking
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageQueued:
		return "queued"
	case StageChecking:
		return "checking"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	}
	return "unknown"
}

// Event is one per-file progress notification.
type Event struct {
	Path   string
	Stage  Stage
	Issues int
	Err    error
}

func emit(ch chan<- Event, ev Event) {
	if ch != nil {
		ch <- ev
	}
}
