package main

import (
	"context"
	"time"

	"harvester/internal/domain/consts"
	"harvester/internal/repo"
	"harvester/internal/utils/logging"
)

// startHeartbeat starts the program heartbeat.
//
// Mainly useful for preventing DB lockouts.
func startHeartbeat(ctx context.Context, progControl *repo.ProgControl) {
	ticker := time.NewTicker(consts.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := progControl.UpdateHeartbeat(); err != nil {
				logging.E("Failed to update heartbeat for process ID %d: %v", progControl.ProcessID, err)
			}
		}
	}
}

// cleanup safely quits the program. It must be deferred.
func cleanup(progControl *repo.ProgControl, startTime time.Time) {
	r := recover() // grab panic condition
	if r != nil {
		logging.E("Panic occurred: %v", r)
	}

	if err := progControl.QuitHarvester(startTime); err != nil {
		logging.E("!!! Failed to mark %s as exited, won't run again until heartbeat goes stale (%v): %v",
			consts.ProgramDisplay, consts.StaleProcessThreshold, err)
	}

	if r != nil {
		panic(r)
	}
}
