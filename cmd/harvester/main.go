// Package main is the entrypoint of Harvester.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"harvester/internal/cfg"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/domain/paths"
	"harvester/internal/state"
	"harvester/internal/utils/logging"
)

// main is the main entrypoint of the program.
func main() {
	os.Exit(run())
}

// run wires the program together and returns the exit code.
func run() int {
	startTime := time.Now()

	if err := paths.InitProgFilesDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "%s exiting with error: %v\n", consts.ProgramDisplay, err)
		return 1
	}

	if err := logging.SetupLogging(paths.LogFilePath); err != nil {
		fmt.Fprintf(os.Stderr, "could not set up logging, proceeding without: %v\n", err)
	}
	defer logging.Close()

	// Initialize application (DB, stores, program row)
	app, err := initializeApplication()
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyRunning) {
			logging.E("%v", err)
			return 2
		}
		logging.E("Error initializing %s: %v", consts.ProgramDisplay, err)
		return 1
	}
	defer app.database.Close()

	logging.D(1, "%s (PID: %d) started at: %v",
		consts.ProgramDisplay, app.progControl.ProcessID, startTime.Format("2006-01-02 15:04:05.00 MST"))

	// Create cancellable context for shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	interrupt := state.NewInterrupt()
	go func() {
		<-ctx.Done()
		interrupt.Set()
	}()

	defer cleanup(app.progControl, startTime)

	// Heartbeat shutdown channel
	heartbeatDone := make(chan struct{})
	hbCtx, stopHeartbeat := context.WithCancel(context.Background())
	go func() {
		startHeartbeat(hbCtx, app.progControl)
		close(heartbeatDone)
	}()
	defer func() {
		stopHeartbeat()
		<-heartbeatDone // wait for heartbeat to flush DB state
	}()

	// ---- RUN PROGRAM ----
	runErr := func() error {
		if err := cfg.InitCommands(cfg.Deps{Store: app.store, Interrupt: interrupt}); err != nil {
			return err
		}
		return cfg.Execute(ctx)
	}()

	if runErr != nil {
		logging.E("Error: %v", runErr)
		return 1
	}
	if interrupt.IsSet() {
		return 130
	}
	return 0
}
