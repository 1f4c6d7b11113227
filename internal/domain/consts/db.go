package consts

// Tables
const (
	DBProgram = "program"
	DBRuns    = "runs"
	DBRunURLs = "run_urls"
	DBSummary = "summary"
)

// Program
const (
	QProgHost      = "host"
	QProgID        = "id"
	QProgHeartbeat = "last_heartbeat"
	QProgPID       = "pid"
	QProgStartedAt = "started_at"
	QProgRunning   = "running"
)

// Runs
const (
	QRunID         = "id"
	QRunList       = "list_name"
	QRunState      = "state"
	QRunTotal      = "total"
	QRunSuccessful = "successful"
	QRunFailed     = "failed"
	QRunSkipped    = "skipped"
	QRunElapsedMS  = "elapsed_ms"
	QRunStartedAt  = "started_at"
	QRunFinishedAt = "finished_at"
)

// Run URLs
const (
	QRunURLRunID    = "run_id"
	QRunURLPosition = "position"
	QRunURLURL      = "url"
	QRunURLOutcome  = "outcome"
	QRunURLExitCode = "exit_code"
	QRunURLError    = "error"
)

// Summary
const (
	QSumID         = "id"
	QSumRuns       = "total_runs"
	QSumSuccessful = "total_successful"
	QSumFailed     = "total_failed"
	QSumSkipped    = "total_skipped"
	QSumLastRunAt  = "last_run_at"
	QSumLastList   = "last_list"
)
