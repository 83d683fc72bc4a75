package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/johnwards/storefront/internal/database"
	"github.com/johnwards/storefront/internal/testhelpers"
)

func TestOpenConfiguresConnection(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	// In-memory databases report "memory" instead of "wal".
	if journalMode != "wal" && journalMode != "memory" {
		t.Errorf("journal_mode = %q, want wal or memory", journalMode)
	}

	var busy int
	if err := db.QueryRow("PRAGMA busy_timeout").Scan(&busy); err != nil {
		t.Fatalf("query busy_timeout: %v", err)
	}
	if busy != 5000 {
		t.Errorf("busy_timeout = %d, want 5000", busy)
	}
}

func TestOpenCreatesSlotSchema(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	var versions int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if versions != 1 {
		t.Errorf("applied migrations = %d, want 1", versions)
	}
	if _, err := db.Exec(`SELECT listing_key, slot, payload, updated_at FROM listing_slots`); err != nil {
		t.Errorf("listing_slots not usable: %v", err)
	}
}

func TestReopenKeepsSlots(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "slots.db")

	db, err := database.Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO listing_slots (listing_key, slot, payload, updated_at) VALUES ('search', 'initial', '{}', '2026-01-01T00:00:00.000Z')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	_ = db.Close()

	db, err = database.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM listing_slots`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("slots after reopen = %d, want 1", n)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	// Open already migrated; further runs must be no-ops.
	for i := 0; i < 2; i++ {
		if err := database.Migrate(context.Background(), db); err != nil {
			t.Fatalf("migrate (run %d): %v", i+1, err)
		}
	}
	var versions int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions); err != nil {
		t.Fatalf("query schema_migrations: %v", err)
	}
	if versions != 1 {
		t.Errorf("applied migrations = %d, want 1", versions)
	}
}
