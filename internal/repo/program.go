// Package repo holds the SQL stores for program control and run history.
package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// ProgControl holds a pointer to the sql.DB, and program process ID.
type ProgControl struct {
	DB        *sql.DB
	ProcessID int
}

// NewProgController returns a program controller.
//
// The program row ensures only one harvester runs against the state directory at a time.
func NewProgController(database *sql.DB) *ProgControl {
	return &ProgControl{
		DB: database,
	}
}

// StartHarvester marks the program as running, resetting a stale row left by a crash.
func (pc *ProgControl) StartHarvester() (pid int, err error) {
	id, running, err := pc.checkProgRunning()
	if err != nil {
		return 0, err
	}
	if running {
		reset, err := pc.resetStaleProcess()
		if err != nil {
			return 0, fmt.Errorf("could not correct stale process: %w", err)
		}
		if !reset {
			return 0, fmt.Errorf("%w (PID: %d)", errs.ErrAlreadyRunning, id)
		}
	}

	pid = os.Getpid()
	host, err := os.Hostname()
	if err != nil {
		logging.E("Failed to get device hostname: %v", err)
	}

	now := time.Now().UTC()
	if _, err := squirrel.
		Update(consts.DBProgram).
		Set(consts.QProgRunning, true).
		Set(consts.QProgPID, pid).
		Set(consts.QProgStartedAt, now).
		Set(consts.QProgHeartbeat, now).
		Set(consts.QProgHost, host).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		Exec(); err != nil {
		return pid, fmt.Errorf("failed to mark program running: %w", err)
	}

	pc.ProcessID = pid
	return pid, nil
}

// QuitHarvester clears the running flag, ready for next run.
func (pc *ProgControl) QuitHarvester(startTime time.Time) error {
	id, running, err := pc.checkProgRunning()
	if err != nil {
		return err
	}
	if !running {
		return fmt.Errorf("harvester is not marked as running. Process %d still active?", id)
	}

	now := time.Now()
	if _, err := squirrel.
		Update(consts.DBProgram).
		Set(consts.QProgRunning, false).
		Set(consts.QProgPID, 0).
		Set(consts.QProgHeartbeat, now.UTC()).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		Exec(); err != nil {
		return err
	}

	logging.I("%s finished: %v (time elapsed: %.2f seconds)",
		consts.ProgramDisplay,
		now.Local().Format("2006-01-02 15:04:05.00 MST"),
		now.Sub(startTime).Seconds())
	return nil
}

// UpdateHeartbeat updates the program heartbeat.
//
// Without it a power cut would leave the program row marked running forever.
func (pc *ProgControl) UpdateHeartbeat() error {
	_, err := squirrel.
		Update(consts.DBProgram).
		Set(consts.QProgHeartbeat, time.Now().UTC()).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		Exec()
	return err
}

// checkProgRunning checks if the program is already running.
func (pc *ProgControl) checkProgRunning() (int, bool, error) {
	var (
		running bool
		pid     sql.NullInt64
	)

	err := squirrel.
		Select(consts.QProgRunning, consts.QProgPID).
		From(consts.DBProgram).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		QueryRow().
		Scan(&running, &pid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to query program running row: %w", err)
	}

	pidValue := 0
	if pid.Valid {
		pidValue = int(pid.Int64)
	}
	return pidValue, running, nil
}

// resetStaleProcess clears a running row whose heartbeat has gone quiet.
func (pc *ProgControl) resetStaleProcess() (reset bool, err error) {
	var lastHeartbeat sql.NullTime

	if err := squirrel.
		Select(consts.QProgHeartbeat).
		From(consts.DBProgram).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		QueryRow().
		Scan(&lastHeartbeat); err != nil {
		return false, err
	}

	if lastHeartbeat.Valid && time.Since(lastHeartbeat.Time) <= consts.StaleProcessThreshold {
		return false, nil
	}

	logging.I("Detected stale process, resetting state...")
	if _, err := squirrel.
		Update(consts.DBProgram).
		Set(consts.QProgRunning, false).
		Set(consts.QProgPID, 0).
		Where(squirrel.Eq{consts.QProgID: 1}).
		RunWith(pc.DB).
		Exec(); err != nil {
		return false, err
	}
	return true, nil
}
