package store

import "database/sql"

// Store holds the slot backend used by the application and the database
// behind it, if any.
type Store struct {
	Backend Backend
	db      *sql.DB
}

// New creates a Store persisting slots in db. Close closes db.
func New(db *sql.DB) *Store {
	return &Store{
		Backend: NewSQLiteBackend(db),
		db:      db,
	}
}

// NewInMemory creates a Store whose slots live in process memory.
func NewInMemory() *Store {
	return &Store{Backend: NewMemoryBackend()}
}

// Close releases the database of a persistent Store. It is a no-op for an
// in-memory Store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
