// Package navigation holds the query state of the page a listing is shown on.
package navigation

import (
	"context"
	"sync"

	"github.com/johnwards/storefront/internal/domain"
)

// Navigator exposes the current navigation query and replaces it when a
// search changes the listing. ReplaceQuery may fail or be cancelled.
type Navigator interface {
	CurrentQuery() domain.Criteria
	ReplaceQuery(ctx context.Context, query domain.Criteria) error
}

// ReplaceHook is called before a Memory navigator applies a new query. A
// non-nil error aborts the replacement.
type ReplaceHook func(ctx context.Context, query domain.Criteria) error

// Memory is a Navigator holding the query in process memory.
type Memory struct {
	mu    sync.RWMutex
	query domain.Criteria
	hook  ReplaceHook
}

// MemoryOption configures a Memory navigator.
type MemoryOption func(*Memory)

// WithReplaceHook installs fn to run before every replacement.
func WithReplaceHook(fn ReplaceHook) MemoryOption {
	return func(m *Memory) {
		m.hook = fn
	}
}

// NewMemory creates a Memory navigator starting at initial.
func NewMemory(initial domain.Criteria, opts ...MemoryOption) *Memory {
	m := &Memory{query: initial.Clone()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CurrentQuery returns a copy of the current query.
func (m *Memory) CurrentQuery() domain.Criteria {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.query.Clone()
}

// ReplaceQuery replaces the current query with a copy of query.
func (m *Memory) ReplaceQuery(ctx context.Context, query domain.Criteria) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.hook != nil {
		if err := m.hook(ctx, query); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.query = query.Clone()
	m.mu.Unlock()
	return nil
}
