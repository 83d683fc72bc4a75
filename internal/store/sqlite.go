package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLiteBackend implements Backend backed by the listing_slots table.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLiteBackend.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// Load returns the payload stored for listingKey and slot, or nil.
func (s *SQLiteBackend) Load(ctx context.Context, listingKey string, slot Slot) ([]byte, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM listing_slots WHERE listing_key = ? AND slot = ?`,
		listingKey, string(slot),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query slot: %w", err)
	}
	return []byte(payload), nil
}

// Save replaces the payload stored for listingKey and slot. Each write gets a
// fresh row id so List orders slots by last write.
func (s *SQLiteBackend) Save(ctx context.Context, listingKey string, slot Slot, payload []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return replaceSlot(ctx, tx, listingKey, slot, payload)
	})
}

// SaveInitial replaces the initial slot and deletes the applied slot of
// listingKey in one transaction.
func (s *SQLiteBackend) SaveInitial(ctx context.Context, listingKey string, payload []byte) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := replaceSlot(ctx, tx, listingKey, SlotInitial, payload); err != nil {
			return err
		}
		return replaceSlot(ctx, tx, listingKey, SlotApplied, nil)
	})
}

func (s *SQLiteBackend) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// replaceSlot deletes the row for listingKey and slot and, unless payload is
// nil, inserts the new one.
func replaceSlot(ctx context.Context, tx *sql.Tx, listingKey string, slot Slot, payload []byte) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM listing_slots WHERE listing_key = ? AND slot = ?`,
		listingKey, string(slot),
	); err != nil {
		return fmt.Errorf("delete %s slot: %w", slot, err)
	}
	if payload == nil {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO listing_slots (listing_key, slot, payload, updated_at) VALUES (?, ?, ?, ?)`,
		listingKey, string(slot), string(payload), now(),
	); err != nil {
		return fmt.Errorf("insert %s slot: %w", slot, err)
	}
	return nil
}

// List returns stored slots newest first with cursor-based pagination.
func (s *SQLiteBackend) List(ctx context.Context, opts ListOpts) (*SlotPage, error) {
	limit := normalizeLimit(opts.Limit)

	query := `SELECT id, listing_key, slot, LENGTH(CAST(payload AS BLOB)), updated_at FROM listing_slots`
	args := []any{}
	if opts.After > 0 {
		query += " WHERE id < ?"
		args = append(args, opts.After)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit+1)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := make([]*SlotRecord, 0, limit)
	for rows.Next() {
		var r SlotRecord
		var slot string
		if err := rows.Scan(&r.ID, &r.ListingKey, &slot, &r.Size, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		r.Slot = Slot(slot)
		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("slot rows: %w", err)
	}

	page := &SlotPage{Results: results}
	if len(results) > limit {
		page.Results = results[:limit]
		page.HasMore = true
		page.After = page.Results[limit-1].ID
	}
	return page, nil
}

// Reset deletes every stored slot.
func (s *SQLiteBackend) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM listing_slots`); err != nil {
		return fmt.Errorf("clear listing_slots: %w", err)
	}
	return nil
}
