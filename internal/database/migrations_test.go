package database_test

import (
	"testing"

	"github.com/johnwards/storefront/internal/testhelpers"
)

func TestMigrationsCreateAllTables(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	for _, table := range []string{"schema_migrations", "listing_slots"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}

	var idx string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", "idx_listing_slots_key").Scan(&idx)
	if err != nil {
		t.Errorf("index idx_listing_slots_key not found: %v", err)
	}
}

func TestListingSlotsUniquePerKeyAndSlot(t *testing.T) {
	db := testhelpers.NewTestDB(t)

	insert := `INSERT INTO listing_slots (listing_key, slot, payload, updated_at) VALUES (?, ?, '{}', '2026-01-01T00:00:00.000Z')`
	if _, err := db.Exec(insert, "category", "initial"); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := db.Exec(insert, "category", "applied"); err != nil {
		t.Fatalf("second slot insert: %v", err)
	}
	if _, err := db.Exec(insert, "category", "initial"); err == nil {
		t.Error("expected unique constraint violation for duplicate slot")
	}
}
