package models

import "time"

// RunState is the orchestrator state for one list run.
type RunState string

const (
	RunIdle       RunState = "idle"
	RunValidating RunState = "validating"
	RunProcessing RunState = "processing"
	RunCompleted  RunState = "completed"
	RunAborted    RunState = "aborted"
)

// Finished reports whether the state is terminal.
func (s RunState) Finished() bool {
	return s == RunCompleted || s == RunAborted
}

// URLResult records what happened to a single queued URL.
type URLResult struct {
	Position int
	URL      string
	Outcome  RunOutcome
}

// DownloadStats is the report of one run.
//
// Created fresh per run and never mutated after the run completes.
type DownloadStats struct {
	RunID      string
	ListName   string
	State      RunState
	StartedAt  time.Time
	FinishedAt time.Time
	Elapsed    time.Duration

	Total      int
	Successful int
	Failed     int
	Skipped    int

	FailedURLs  []string
	SkippedURLs []string
	Results     []URLResult
}

// RunRecord is a persisted run row, as read back by history queries.
type RunRecord struct {
	ID         string
	ListName   string
	State      RunState
	Total      int
	Successful int
	Failed     int
	Skipped    int
	Elapsed    time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
}

// Summary is the small cross-run aggregate kept in the state database.
type Summary struct {
	Runs       int
	Successful int
	Failed     int
	Skipped    int
	LastRunAt  time.Time
	LastList   string
}
