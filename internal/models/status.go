package models

import "time"

// EventKind tags the ProgressEvent variant.
type EventKind int

const (
	EventProgress EventKind = iota
	EventDiagnostic
	EventUnrecognized
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventDiagnostic:
		return "diagnostic"
	default:
		return "unrecognized"
	}
}

// ProgressEvent is one classified line of child output.
//
// Percent and ETA are only meaningful for EventProgress. Text always holds the
// line (ANSI stripped) so nothing is lost when forwarding.
type ProgressEvent struct {
	Kind    EventKind
	Percent float64
	ETA     time.Duration
	HasETA  bool
	Text    string
}
