package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/johnwards/storefront/internal/database"
	"github.com/johnwards/storefront/internal/store"
)

// NewTestDB returns an in-memory SQLite database configured and migrated the
// same way as production. The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewSlotBackend returns a SQLite slot backend over a fresh database.
func NewSlotBackend(t *testing.T) *store.SQLiteBackend {
	t.Helper()
	return store.NewSQLiteBackend(NewTestDB(t))
}
