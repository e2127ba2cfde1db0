package store

import "database/sql"

// Store holds all sub-stores used by the application.
type Store struct {
	DB         *sql.DB
	Nodes      NodeStore
	Specs      SpecStore
	Attributes AttributeStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:         db,
		Nodes:      NewSQLiteNodeStore(db),
		Specs:      NewSQLiteSpecStore(db),
		Attributes: NewSQLiteAttributeStore(db),
	}
}
