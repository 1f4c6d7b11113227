package main

import (
	"fmt"

	"harvester/internal/database"
	"harvester/internal/domain/paths"
	"harvester/internal/repo"
	"harvester/internal/utils/logging"
)

// application holds the handles opened at startup.
type application struct {
	database    *database.Database
	store       *repo.Store
	progControl *repo.ProgControl
}

// initializeApplication sets up the application for the current run.
func initializeApplication() (*application, error) {
	logging.D(1, "Database: %s  Log file: %s  Lists: %s", paths.DBFilePath, paths.LogFilePath, paths.ListsDir)

	// Database & stores
	db, err := database.InitDB(paths.DBFilePath)
	if err != nil {
		return nil, err
	}
	store := repo.InitStores(db.DB)

	// Start controller
	progControl := store.GetProgControl()
	if progControl.ProcessID, err = progControl.StartHarvester(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not start: %w", err)
	}

	return &application{
		database:    db,
		store:       store,
		progControl: progControl,
	}, nil
}
