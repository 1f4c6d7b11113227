// Package errs holds the error taxonomy shared by the runner and orchestrator.
//
// Every failure is classified into one of these sentinels before it crosses a
// package boundary, so callers can branch with errors.Is.
package errs

import "errors"

var (
	// ErrValidation marks malformed input: a list entry (skipped, never fatal) or a setting.
	ErrValidation = errors.New("invalid input")
	// ErrChildFailure marks a child process that exited non-zero.
	ErrChildFailure = errors.New("child process failed")
	// ErrCancelled marks work stopped by an operator interrupt.
	ErrCancelled = errors.New("cancelled by interrupt")
	// ErrSpawn marks a child that could not be started.
	ErrSpawn = errors.New("failed to spawn child process")
	// ErrPersistence marks a list, log or state write that did not land.
	ErrPersistence = errors.New("failed to persist run state")
	// ErrAlreadyRunning marks a second harvester started while one is active.
	ErrAlreadyRunning = errors.New("harvester is already running")
)
