package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: listing slots
	{
		`CREATE TABLE listing_slots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			listing_key TEXT NOT NULL,
			slot TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(listing_key, slot)
		)`,
		`CREATE INDEX idx_listing_slots_key ON listing_slots(listing_key)`,
	},
}
