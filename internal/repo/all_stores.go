package repo

import (
	"database/sql"
)

// Store bundles the stores sharing one database handle.
type Store struct {
	db          *sql.DB
	runStore    *RunStore
	progControl *ProgControl
}

// InitStores returns every store bound to db.
func InitStores(db *sql.DB) *Store {
	return &Store{
		db:          db,
		runStore:    GetRunStore(db),
		progControl: NewProgController(db),
	}
}

// GetRunStore returns the run history store.
func (s *Store) GetRunStore() *RunStore {
	return s.runStore
}

// GetProgControl returns the program controller.
func (s *Store) GetProgControl() *ProgControl {
	return s.progControl
}
