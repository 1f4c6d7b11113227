package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"harvester/internal/database"
	"harvester/internal/domain/errs"
	"harvester/internal/models"
)

func openTestDB(t *testing.T) *database.Database {
	t.Helper()
	d, err := database.InitDB(filepath.Join(t.TempDir(), "harvester.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func sampleStats(id, list string, started time.Time) *models.DownloadStats {
	return &models.DownloadStats{
		RunID:      id,
		ListName:   list,
		State:      models.RunCompleted,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Elapsed:    90 * time.Second,
		Total:      3,
		Successful: 2,
		Failed:     1,
		Skipped:    1,
		FailedURLs: []string{"https://example.com/b"},
		Results: []models.URLResult{
			{Position: 1, URL: "https://example.com/a", Outcome: models.Succeeded()},
			{Position: 2, URL: "https://example.com/b", Outcome: models.FailedWithCode(1)},
			{Position: 3, URL: "https://example.com/c", Outcome: models.Succeeded()},
		},
	}
}

func TestRecordRunAndSummary(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	rs := InitStores(d.DB).GetRunStore()
	ctx := context.Background()

	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	if err := rs.RecordRun(ctx, sampleStats("run-1", "music", base)); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if err := rs.RecordRun(ctx, sampleStats("run-2", "talks", base.Add(24*time.Hour))); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	sum, err := rs.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
	if sum.Runs != 2 || sum.Successful != 4 || sum.Failed != 2 || sum.Skipped != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if sum.LastList != "talks" {
		t.Fatalf("last list = %q, want talks", sum.LastList)
	}

	var urlRows int
	if err := d.DB.QueryRow(`SELECT COUNT(*) FROM run_urls WHERE run_id = ?`, "run-1").Scan(&urlRows); err != nil || urlRows != 3 {
		t.Fatalf("run_urls rows = %d, %v", urlRows, err)
	}

	// Duplicate run IDs are rejected and leave the summary untouched
	if err := rs.RecordRun(ctx, sampleStats("run-1", "music", base)); err == nil {
		t.Fatalf("expected duplicate run ID to fail")
	}
	sum, err = rs.GetSummary(ctx)
	if err != nil || sum.Runs != 2 {
		t.Fatalf("summary after failed insert = %+v, %v", sum, err)
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	rs := GetRunStore(d.DB)
	ctx := context.Background()

	base := time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := rs.RecordRun(ctx, sampleStats(id, "list", base.Add(time.Duration(i)*24*time.Hour))); err != nil {
			t.Fatalf("RecordRun %s: %v", id, err)
		}
	}

	all, err := rs.ListRuns(ctx, time.Time{}, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 || all[0].ID != "c" || all[2].ID != "a" {
		t.Fatalf("runs = %+v, want newest first", all)
	}
	if all[0].Elapsed != 90*time.Second || all[0].State != models.RunCompleted {
		t.Fatalf("run fields = %+v", all[0])
	}

	since, err := rs.ListRuns(ctx, base.Add(12*time.Hour), 0)
	if err != nil || len(since) != 2 {
		t.Fatalf("since filter returned %d runs, %v", len(since), err)
	}

	limited, err := rs.ListRuns(ctx, time.Time{}, 1)
	if err != nil || len(limited) != 1 || limited[0].ID != "c" {
		t.Fatalf("limit returned %+v, %v", limited, err)
	}
}

func TestProgControlSingleInstance(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	pc := NewProgController(d.DB)

	start := time.Now()
	if _, err := pc.StartHarvester(); err != nil {
		t.Fatalf("StartHarvester: %v", err)
	}
	if err := pc.UpdateHeartbeat(); err != nil {
		t.Fatalf("UpdateHeartbeat: %v", err)
	}

	if _, err := NewProgController(d.DB).StartHarvester(); !errors.Is(err, errs.ErrAlreadyRunning) {
		t.Fatalf("second start err = %v, want ErrAlreadyRunning", err)
	}

	if err := pc.QuitHarvester(start); err != nil {
		t.Fatalf("QuitHarvester: %v", err)
	}
	if _, err := NewProgController(d.DB).StartHarvester(); err != nil {
		t.Fatalf("start after quit: %v", err)
	}
}

func TestProgControlResetsStaleRow(t *testing.T) {
	t.Parallel()

	d := openTestDB(t)
	stale := time.Now().Add(-10 * time.Minute).UTC()
	if _, err := d.DB.Exec(`UPDATE program SET running = 1, pid = 999999, last_heartbeat = ? WHERE id = 1`, stale); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := NewProgController(d.DB).StartHarvester(); err != nil {
		t.Fatalf("stale row should be reset, got %v", err)
	}
}
