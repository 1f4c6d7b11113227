package models

import (
	"fmt"

	"harvester/internal/domain/errs"
)

// OutcomeKind tags the RunOutcome variant.
type OutcomeKind int

const (
	OutcomeSucceeded OutcomeKind = iota
	OutcomeFailed
	OutcomeCancelled
	OutcomeSpawnError
)

// String returns the stored/logged name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSpawnError:
		return "spawn-error"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// RunOutcome is the classified result of one Job. Immutable once produced.
type RunOutcome struct {
	Kind     OutcomeKind
	ExitCode int
	Err      error
}

// Succeeded returns the outcome of a zero exit.
func Succeeded() RunOutcome {
	return RunOutcome{Kind: OutcomeSucceeded}
}

// FailedWithCode returns the outcome of a non-zero exit.
func FailedWithCode(code int) RunOutcome {
	return RunOutcome{
		Kind:     OutcomeFailed,
		ExitCode: code,
		Err:      fmt.Errorf("%w: exit code %d", errs.ErrChildFailure, code),
	}
}

// Cancelled returns the outcome of a job stopped by the interrupt token.
func Cancelled() RunOutcome {
	return RunOutcome{Kind: OutcomeCancelled, ExitCode: -1, Err: errs.ErrCancelled}
}

// SpawnError returns the outcome of a child that could not be started.
func SpawnError(reason error) RunOutcome {
	return RunOutcome{
		Kind:     OutcomeSpawnError,
		ExitCode: -1,
		Err:      fmt.Errorf("%w: %w", errs.ErrSpawn, reason),
	}
}

// OK reports whether the job succeeded.
func (o RunOutcome) OK() bool {
	return o.Kind == OutcomeSucceeded
}

// String renders the outcome for logs.
func (o RunOutcome) String() string {
	switch o.Kind {
	case OutcomeFailed:
		return fmt.Sprintf("%s (exit %d)", o.Kind, o.ExitCode)
	case OutcomeSpawnError:
		return fmt.Sprintf("%s: %v", o.Kind, o.Err)
	default:
		return o.Kind.String()
	}
}
