package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/listing"
)

// ErrUnknownListing is returned for listing keys that were never registered.
var ErrUnknownListing = errors.New("unknown listing")

// endpoint is a Reconciler with its element type erased.
type endpoint interface {
	view(ctx context.Context) (any, error)
	query() domain.Criteria
	setInitial(ctx context.Context, raw json.RawMessage) error
	initSearch(ctx context.Context, c domain.Criteria) error
	search(ctx context.Context, c domain.Criteria, opts listing.SearchOptions) error
	loadMore(ctx context.Context) error
	changeSorting(ctx context.Context, order string) error
	changePage(ctx context.Context, page int) error
}

type typed[T any] struct {
	r *listing.Reconciler[T]
}

func (e typed[T]) view(ctx context.Context) (any, error) { return e.r.View(ctx) }

func (e typed[T]) query() domain.Criteria { return e.r.NavigationQuery() }

func (e typed[T]) setInitial(ctx context.Context, raw json.RawMessage) error {
	var l domain.ListingResult[T]
	if err := json.Unmarshal(raw, &l); err != nil {
		return &decodeError{err: err}
	}
	return e.r.SetInitialListing(ctx, &l)
}

func (e typed[T]) initSearch(ctx context.Context, c domain.Criteria) error {
	return e.r.InitSearch(ctx, c)
}

func (e typed[T]) search(ctx context.Context, c domain.Criteria, opts listing.SearchOptions) error {
	return e.r.Search(ctx, c, opts)
}

func (e typed[T]) loadMore(ctx context.Context) error { return e.r.LoadMore(ctx) }

func (e typed[T]) changeSorting(ctx context.Context, order string) error {
	return e.r.ChangeCurrentSortingOrder(ctx, order)
}

func (e typed[T]) changePage(ctx context.Context, page int) error {
	return e.r.ChangeCurrentPage(ctx, page)
}

// decodeError marks a request payload that did not fit the listing's
// element type.
type decodeError struct{ err error }

func (e *decodeError) Error() string { return "decode listing: " + e.err.Error() }

func (e *decodeError) Unwrap() error { return e.err }

// Registry holds the reconcilers served over HTTP, keyed by listing key.
type Registry struct {
	mu        sync.RWMutex
	endpoints map[string]endpoint
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{endpoints: make(map[string]endpoint)}
}

// Register adds r under its listing key. Registering a key twice is an error.
func Register[T any](reg *Registry, r *listing.Reconciler[T]) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.endpoints[r.Key()]; ok {
		return fmt.Errorf("listing %q already registered", r.Key())
	}
	reg.endpoints[r.Key()] = typed[T]{r: r}
	return nil
}

// Keys returns the registered listing keys in sorted order.
func (reg *Registry) Keys() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	keys := make([]string, 0, len(reg.endpoints))
	for k := range reg.endpoints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (reg *Registry) lookup(key string) (endpoint, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	e, ok := reg.endpoints[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownListing, key)
	}
	return e, nil
}
