package store

import (
	"context"
	"slices"
	"sync"
)

type slotID struct {
	key  string
	slot Slot
}

type memoryEntry struct {
	id        int64
	payload   []byte
	updatedAt string
}

// MemoryBackend implements Backend in process memory. Writes are
// last-write-wins.
type MemoryBackend struct {
	mu      sync.RWMutex
	seq     int64
	entries map[slotID]memoryEntry
}

// NewMemoryBackend creates an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[slotID]memoryEntry)}
}

// Load returns a copy of the payload stored for listingKey and slot, or nil.
func (m *MemoryBackend) Load(_ context.Context, listingKey string, slot Slot) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[slotID{listingKey, slot}]
	if !ok {
		return nil, nil
	}
	return slices.Clone(e.payload), nil
}

// Save replaces the payload stored for listingKey and slot.
func (m *MemoryBackend) Save(_ context.Context, listingKey string, slot Slot, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(slotID{listingKey, slot}, payload)
	return nil
}

// SaveInitial replaces the initial slot and drops the applied slot of
// listingKey under one lock.
func (m *MemoryBackend) SaveInitial(_ context.Context, listingKey string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(slotID{listingKey, SlotInitial}, payload)
	delete(m.entries, slotID{listingKey, SlotApplied})
	return nil
}

// put must be called with mu held.
func (m *MemoryBackend) put(id slotID, payload []byte) {
	if payload == nil {
		delete(m.entries, id)
		return
	}
	m.seq++
	m.entries[id] = memoryEntry{id: m.seq, payload: slices.Clone(payload), updatedAt: now()}
}

// List returns stored slots newest first with cursor-based pagination.
func (m *MemoryBackend) List(_ context.Context, opts ListOpts) (*SlotPage, error) {
	limit := normalizeLimit(opts.Limit)

	m.mu.RLock()
	records := make([]*SlotRecord, 0, len(m.entries))
	for id, e := range m.entries {
		if opts.After > 0 && e.id >= opts.After {
			continue
		}
		records = append(records, &SlotRecord{
			ID:         e.id,
			ListingKey: id.key,
			Slot:       id.slot,
			Size:       len(e.payload),
			UpdatedAt:  e.updatedAt,
		})
	}
	m.mu.RUnlock()

	slices.SortFunc(records, func(a, b *SlotRecord) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})

	page := &SlotPage{Results: records}
	if len(records) > limit {
		page.Results = records[:limit]
		page.HasMore = true
		page.After = page.Results[limit-1].ID
	}
	return page, nil
}

// Reset deletes every stored slot.
func (m *MemoryBackend) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}
