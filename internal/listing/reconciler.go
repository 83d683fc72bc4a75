package listing

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/johnwards/storefront/internal/criteria"
	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/filters"
	"github.com/johnwards/storefront/internal/navigation"
	"github.com/johnwards/storefront/internal/store"
)

// SearchFunc performs one search against the backend. Its errors are passed
// to callers of the Reconciler unchanged.
type SearchFunc[T any] func(ctx context.Context, c domain.Criteria) (*domain.ListingResult[T], error)

// FilterExtractor derives the available filters from a listing's aggregations.
type FilterExtractor func(domain.Aggregations) []domain.ListingFilter

// Action names a reconciler operation for logging and metrics.
type Action string

const (
	ActionInitSearch Action = "init_search"
	ActionSearch     Action = "search"
	ActionLoadMore   Action = "load_more"
)

// Observer is notified after every action with its duration and outcome.
type Observer interface {
	ObserveAction(listingKey string, action Action, d time.Duration, err error)
}

// StoreError reports a failed slot read or write. Search failures are never
// wrapped in it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// SearchOptions modify a Search call.
type SearchOptions struct {
	// PreventRouteChange keeps the navigation query as it is.
	PreventRouteChange bool
}

// Reconciler manages the listing stored under one listing key.
type Reconciler[T any] struct {
	key      string
	search   SearchFunc[T]
	slots    store.SlotStore[T]
	nav      navigation.Navigator
	defaults domain.Criteria
	extract  FilterExtractor
	logger   *slog.Logger
	observer Observer

	discardStale bool
	searchSeq    atomic.Uint64
	loadMoreSeq  atomic.Uint64

	loading     atomic.Bool
	loadingMore atomic.Bool
}

// New creates a Reconciler for listingKey. search is the only I/O the
// reconciler performs besides reading and writing slots and nav.
func New[T any](listingKey string, search SearchFunc[T], slots store.SlotStore[T], nav navigation.Navigator, opts ...Option) *Reconciler[T] {
	o := options{
		defaults: domain.Criteria{},
		extract:  filters.Extract,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reconciler[T]{
		key:          listingKey,
		search:       search,
		slots:        slots,
		nav:          nav,
		defaults:     o.defaults,
		extract:      o.extract,
		logger:       o.logger.With("listing", listingKey),
		observer:     o.observer,
		discardStale: o.discardStale,
	}
}

// Key returns the listing key.
func (r *Reconciler[T]) Key() string { return r.key }

// Loading reports whether a search action is in flight.
func (r *Reconciler[T]) Loading() bool { return r.loading.Load() }

// LoadingMore reports whether a load-more action is in flight.
func (r *Reconciler[T]) LoadingMore() bool { return r.loadingMore.Load() }

// NavigationQuery returns a copy of the current navigation query.
func (r *Reconciler[T]) NavigationQuery() domain.Criteria { return r.nav.CurrentQuery().Clone() }

// InitSearch loads the baseline listing for c and stores it as the initial
// listing, which clears any applied listing.
func (r *Reconciler[T]) InitSearch(ctx context.Context, c domain.Criteria) (err error) {
	r.loading.Store(true)
	defer r.loading.Store(false)
	defer r.observe(ActionInitSearch, time.Now(), &err)

	seq := r.searchSeq.Add(1)
	result, err := r.search(ctx, criteria.Build(r.defaults, c))
	if err != nil {
		return err
	}
	if r.superseded(&r.searchSeq, seq) {
		r.logger.Debug("discarding superseded response", "action", ActionInitSearch)
		return nil
	}
	return r.SetInitialListing(ctx, result)
}

// Search runs a client-driven search for c and stores the result as the
// applied listing. Unless opts.PreventRouteChange is set, the navigation
// query is replaced with c first; a failed replacement does not stop the
// search.
func (r *Reconciler[T]) Search(ctx context.Context, c domain.Criteria, opts SearchOptions) (err error) {
	r.loading.Store(true)
	defer r.loading.Store(false)
	defer r.observe(ActionSearch, time.Now(), &err)

	if !opts.PreventRouteChange {
		if navErr := r.nav.ReplaceQuery(ctx, c); navErr != nil {
			r.logger.Warn("navigation query replace failed", "error", navErr)
		}
	}

	seq := r.searchSeq.Add(1)
	result, err := r.search(ctx, criteria.Build(r.defaults, c))
	if err != nil {
		return err
	}
	if r.superseded(&r.searchSeq, seq) {
		r.logger.Debug("discarding superseded response", "action", ActionSearch)
		return nil
	}
	if err := r.slots.Set(ctx, r.key, store.SlotApplied, result); err != nil {
		return &StoreError{Op: "store applied listing", Err: err}
	}
	return nil
}

// LoadMore fetches the page after the current one under the current
// navigation query and appends its elements to the current listing. Only the
// page marker and the elements of the current listing change.
func (r *Reconciler[T]) LoadMore(ctx context.Context) (err error) {
	r.loadingMore.Store(true)
	defer r.loadingMore.Store(false)
	defer r.observe(ActionLoadMore, time.Now(), &err)

	current, err := r.CurrentListing(ctx)
	if err != nil {
		return err
	}
	query := r.nav.CurrentQuery().Clone()
	query[domain.CriteriaPage] = currentPage(current) + 1

	seq := r.loadMoreSeq.Add(1)
	result, err := r.search(ctx, criteria.Build(r.defaults, query))
	if err != nil {
		return err
	}
	if r.superseded(&r.loadMoreSeq, seq) {
		r.logger.Debug("discarding superseded response", "action", ActionLoadMore)
		return nil
	}

	// Re-read: the current listing may have changed while the search ran.
	current, err = r.CurrentListing(ctx)
	if err != nil {
		return err
	}
	next := *current
	next.Page = result.Page
	next.Elements = make([]T, 0, len(current.Elements)+len(result.Elements))
	next.Elements = append(next.Elements, current.Elements...)
	next.Elements = append(next.Elements, result.Elements...)

	if err := r.slots.Set(ctx, r.key, store.SlotApplied, &next); err != nil {
		return &StoreError{Op: "store applied listing", Err: err}
	}
	return nil
}

// SetInitialListing stores l as the initial listing and clears the applied
// listing in one write, resetting the listing to its baseline. On failure
// both slots keep their previous values.
func (r *Reconciler[T]) SetInitialListing(ctx context.Context, l *domain.ListingResult[T]) error {
	if err := r.slots.SetInitial(ctx, r.key, l); err != nil {
		return &StoreError{Op: "store initial listing", Err: err}
	}
	return nil
}

// ChangeCurrentSortingOrder searches with the current navigation query
// sorted by order.
func (r *Reconciler[T]) ChangeCurrentSortingOrder(ctx context.Context, order string) error {
	query := r.nav.CurrentQuery().Clone()
	query[domain.CriteriaOrder] = order
	return r.Search(ctx, query, SearchOptions{})
}

// ChangeCurrentPage searches with the current navigation query at page. A
// page below 1 selects the first page.
func (r *Reconciler[T]) ChangeCurrentPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	query := r.nav.CurrentQuery().Clone()
	query[domain.CriteriaPage] = page
	return r.Search(ctx, query, SearchOptions{})
}

// CurrentListing returns the applied listing if present, else the initial
// listing, else an empty listing.
func (r *Reconciler[T]) CurrentListing(ctx context.Context) (*domain.ListingResult[T], error) {
	applied, err := r.slots.Get(ctx, r.key, store.SlotApplied)
	if err != nil {
		return nil, &StoreError{Op: "read applied listing", Err: err}
	}
	if applied != nil {
		return applied, nil
	}
	initial, err := r.slots.Get(ctx, r.key, store.SlotInitial)
	if err != nil {
		return nil, &StoreError{Op: "read initial listing", Err: err}
	}
	if initial != nil {
		return initial, nil
	}
	return &domain.ListingResult[T]{}, nil
}

// AppliedListing returns the applied listing, or nil.
func (r *Reconciler[T]) AppliedListing(ctx context.Context) (*domain.ListingResult[T], error) {
	l, err := r.slots.Get(ctx, r.key, store.SlotApplied)
	if err != nil {
		return nil, &StoreError{Op: "read applied listing", Err: err}
	}
	return l, nil
}

// InitialListing returns the initial listing, or nil.
func (r *Reconciler[T]) InitialListing(ctx context.Context) (*domain.ListingResult[T], error) {
	l, err := r.slots.Get(ctx, r.key, store.SlotInitial)
	if err != nil {
		return nil, &StoreError{Op: "read initial listing", Err: err}
	}
	return l, nil
}

func (r *Reconciler[T]) superseded(seq *atomic.Uint64, id uint64) bool {
	return r.discardStale && seq.Load() != id
}

func (r *Reconciler[T]) observe(action Action, start time.Time, err *error) {
	d := time.Since(start)
	if *err != nil {
		r.logger.Debug("listing action failed", "action", action, "duration", d.String(), "error", *err)
	} else {
		r.logger.Debug("listing action done", "action", action, "duration", d.String())
	}
	if r.observer != nil {
		r.observer.ObserveAction(r.key, action, d, *err)
	}
}
