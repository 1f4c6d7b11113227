package models

import (
	"context"
	"time"
)

// RunStore persists run history and the cross-run summary.
type RunStore interface {
	RecordRun(ctx context.Context, stats *DownloadStats) error
	GetSummary(ctx context.Context) (Summary, error)
	ListRuns(ctx context.Context, since time.Time, limit int) ([]RunRecord, error)
}
