package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johnwards/storefront/internal/domain"
)

// Slot names one of the two listing results stored per listing key.
type Slot string

const (
	// SlotInitial holds the baseline result, typically the first page loaded.
	SlotInitial Slot = "initial"
	// SlotApplied holds the result of the latest client-driven search.
	SlotApplied Slot = "applied"
)

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	return s == SlotInitial || s == SlotApplied
}

// ErrInvalidSlot is returned for slot names other than SlotInitial and SlotApplied.
var ErrInvalidSlot = errors.New("invalid slot")

// SlotStore reads and writes listing results by listing key and slot. Get
// returns nil without error for an empty slot; Set with a nil value clears it.
// SetInitial stores the initial slot and clears the applied slot together:
// either both change or neither does.
type SlotStore[T any] interface {
	Get(ctx context.Context, listingKey string, slot Slot) (*domain.ListingResult[T], error)
	Set(ctx context.Context, listingKey string, slot Slot, v *domain.ListingResult[T]) error
	SetInitial(ctx context.Context, listingKey string, v *domain.ListingResult[T]) error
}

// Backend stores encoded slot payloads. Load returns nil for an empty slot;
// Save with a nil payload clears it. SaveInitial writes the initial slot and
// deletes the applied slot of listingKey atomically.
type Backend interface {
	Load(ctx context.Context, listingKey string, slot Slot) ([]byte, error)
	Save(ctx context.Context, listingKey string, slot Slot, payload []byte) error
	SaveInitial(ctx context.Context, listingKey string, payload []byte) error
	List(ctx context.Context, opts ListOpts) (*SlotPage, error)
	Reset(ctx context.Context) error
}

// ListOpts holds the parameters for listing stored slots.
type ListOpts struct {
	Limit int
	After int64
}

// SlotRecord describes a stored slot without its payload.
type SlotRecord struct {
	ID         int64  `json:"id"`
	ListingKey string `json:"listingKey"`
	Slot       Slot   `json:"slot"`
	Size       int    `json:"size"`
	UpdatedAt  string `json:"updatedAt"`
}

// SlotPage is a page of stored slots, most recently written first.
type SlotPage struct {
	Results []*SlotRecord
	After   int64
	HasMore bool
}

// Slots is a typed SlotStore over a Backend. Listing results are stored as
// JSON, so any number of Slots with different element types can share one
// Backend as long as their listing keys differ.
type Slots[T any] struct {
	backend Backend
}

// NewSlots creates a typed SlotStore over b.
func NewSlots[T any](b Backend) *Slots[T] {
	return &Slots[T]{backend: b}
}

// Get returns the listing stored in slot for listingKey, or nil when empty.
func (s *Slots[T]) Get(ctx context.Context, listingKey string, slot Slot) (*domain.ListingResult[T], error) {
	if !slot.Valid() {
		return nil, fmt.Errorf("get %q: %w", slot, ErrInvalidSlot)
	}
	payload, err := s.backend.Load(ctx, listingKey, slot)
	if err != nil {
		return nil, fmt.Errorf("load %s/%s: %w", listingKey, slot, err)
	}
	if payload == nil {
		return nil, nil
	}
	var v domain.ListingResult[T]
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", listingKey, slot, err)
	}
	return &v, nil
}

// Set stores v in slot for listingKey. A nil v clears the slot.
func (s *Slots[T]) Set(ctx context.Context, listingKey string, slot Slot, v *domain.ListingResult[T]) error {
	if !slot.Valid() {
		return fmt.Errorf("set %q: %w", slot, ErrInvalidSlot)
	}
	payload, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", listingKey, slot, err)
	}
	if err := s.backend.Save(ctx, listingKey, slot, payload); err != nil {
		return fmt.Errorf("save %s/%s: %w", listingKey, slot, err)
	}
	return nil
}

// SetInitial stores v as the initial listing of listingKey and clears its
// applied listing in one backend write. A nil v clears both slots.
func (s *Slots[T]) SetInitial(ctx context.Context, listingKey string, v *domain.ListingResult[T]) error {
	payload, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", listingKey, SlotInitial, err)
	}
	if err := s.backend.SaveInitial(ctx, listingKey, payload); err != nil {
		return fmt.Errorf("save %s/%s: %w", listingKey, SlotInitial, err)
	}
	return nil
}

func encode[T any](v *domain.ListingResult[T]) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
