package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"harvester/internal/domain/consts"
	"harvester/internal/models"
	"harvester/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// RunStore records run history and the cross-run summary.
type RunStore struct {
	DB *sql.DB
}

// GetRunStore returns a run store on db.
func GetRunStore(db *sql.DB) *RunStore {
	return &RunStore{DB: db}
}

// RecordRun stores a finished run, its per-URL outcomes and updates the summary in one transaction.
func (rs *RunStore) RecordRun(ctx context.Context, stats *models.DownloadStats) (err error) {
	if stats == nil {
		return fmt.Errorf("run stats passed in nil")
	}

	tx, err := rs.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Panic rollback failed for run %s: %v", stats.RunID, rbErr)
			}
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.E("Transaction rollback failed after original error %v: %v", err, rbErr)
			}
		}
	}()

	if _, err := squirrel.
		Insert(consts.DBRuns).
		Columns(
			consts.QRunID,
			consts.QRunList,
			consts.QRunState,
			consts.QRunTotal,
			consts.QRunSuccessful,
			consts.QRunFailed,
			consts.QRunSkipped,
			consts.QRunElapsedMS,
			consts.QRunStartedAt,
			consts.QRunFinishedAt,
		).
		Values(
			stats.RunID,
			stats.ListName,
			string(stats.State),
			stats.Total,
			stats.Successful,
			stats.Failed,
			stats.Skipped,
			stats.Elapsed.Milliseconds(),
			stats.StartedAt.UTC(),
			stats.FinishedAt.UTC(),
		).
		RunWith(tx).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", stats.RunID, err)
	}

	if len(stats.Results) > 0 {
		urlQuery := squirrel.
			Insert(consts.DBRunURLs).
			Columns(
				consts.QRunURLRunID,
				consts.QRunURLPosition,
				consts.QRunURLURL,
				consts.QRunURLOutcome,
				consts.QRunURLExitCode,
				consts.QRunURLError,
			)
		for _, r := range stats.Results {
			var errText sql.NullString
			if r.Outcome.Err != nil {
				errText = sql.NullString{String: r.Outcome.Err.Error(), Valid: true}
			}
			urlQuery = urlQuery.Values(
				stats.RunID,
				r.Position,
				r.URL,
				r.Outcome.Kind.String(),
				r.Outcome.ExitCode,
				errText,
			)
		}
		if _, err := urlQuery.RunWith(tx).ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert URL outcomes for run %s: %w", stats.RunID, err)
		}
	}

	if _, err := squirrel.
		Update(consts.DBSummary).
		Set(consts.QSumRuns, squirrel.Expr(consts.QSumRuns+" + 1")).
		Set(consts.QSumSuccessful, squirrel.Expr(consts.QSumSuccessful+" + ?", stats.Successful)).
		Set(consts.QSumFailed, squirrel.Expr(consts.QSumFailed+" + ?", stats.Failed)).
		Set(consts.QSumSkipped, squirrel.Expr(consts.QSumSkipped+" + ?", stats.Skipped)).
		Set(consts.QSumLastRunAt, stats.FinishedAt.UTC()).
		Set(consts.QSumLastList, stats.ListName).
		Where(squirrel.Eq{consts.QSumID: 1}).
		RunWith(tx).
		ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", stats.RunID, err)
	}
	logging.D(1, "Recorded run %s for list %q", stats.RunID, stats.ListName)
	return nil
}

// GetSummary returns the cross-run summary.
func (rs *RunStore) GetSummary(ctx context.Context) (models.Summary, error) {
	var (
		s        models.Summary
		lastRun  sql.NullTime
		lastList sql.NullString
	)

	err := squirrel.
		Select(
			consts.QSumRuns,
			consts.QSumSuccessful,
			consts.QSumFailed,
			consts.QSumSkipped,
			consts.QSumLastRunAt,
			consts.QSumLastList,
		).
		From(consts.DBSummary).
		Where(squirrel.Eq{consts.QSumID: 1}).
		RunWith(rs.DB).
		QueryRowContext(ctx).
		Scan(&s.Runs, &s.Successful, &s.Failed, &s.Skipped, &lastRun, &lastList)
	if err != nil {
		return models.Summary{}, fmt.Errorf("failed to query summary: %w", err)
	}

	if lastRun.Valid {
		s.LastRunAt = lastRun.Time
	}
	s.LastList = lastList.String
	return s, nil
}

// ListRuns returns runs started at or after since, newest first. limit <= 0 means no limit.
func (rs *RunStore) ListRuns(ctx context.Context, since time.Time, limit int) ([]models.RunRecord, error) {
	query := squirrel.
		Select(
			consts.QRunID,
			consts.QRunList,
			consts.QRunState,
			consts.QRunTotal,
			consts.QRunSuccessful,
			consts.QRunFailed,
			consts.QRunSkipped,
			consts.QRunElapsedMS,
			consts.QRunStartedAt,
			consts.QRunFinishedAt,
		).
		From(consts.DBRuns).
		OrderBy(consts.QRunStartedAt + " DESC")

	if !since.IsZero() {
		query = query.Where(squirrel.GtOrEq{consts.QRunStartedAt: since.UTC()})
	}
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	rows, err := query.RunWith(rs.DB).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close rows: %v", err)
		}
	}()

	var records []models.RunRecord
	for rows.Next() {
		var (
			r         models.RunRecord
			state     string
			elapsedMS int64
		)
		if err := rows.Scan(
			&r.ID,
			&r.ListName,
			&state,
			&r.Total,
			&r.Successful,
			&r.Failed,
			&r.Skipped,
			&elapsedMS,
			&r.StartedAt,
			&r.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		r.State = models.RunState(state)
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating runs: %w", err)
	}
	return records, nil
}
