package models

import "harvester/internal/state"

// Job is one child process invocation.
//
// The runner owns a Job for the duration of a single Run call.
type Job struct {
	Program   string
	Args      []string
	Interrupt *state.Interrupt
}
