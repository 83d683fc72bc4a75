package listing

import (
	"context"

	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/filters"
)

// fallbackLimit is the page size assumed when neither the listing nor the
// defaults carry one.
const fallbackLimit = 10

// View is a snapshot of everything derived from the current listing.
type View[T any] struct {
	Elements            []T                    `json:"elements"`
	Total               int                    `json:"total"`
	Limit               int                    `json:"limit"`
	TotalPages          int                    `json:"totalPages"`
	CurrentPage         int                    `json:"currentPage"`
	SortingOrders       []domain.Sorting       `json:"sortingOrders"`
	CurrentSortingOrder string                 `json:"currentSortingOrder,omitempty"`
	AvailableFilters    []domain.ListingFilter `json:"availableFilters"`
	CurrentFilters      domain.AppliedFilters  `json:"currentFilters"`
	Loading             bool                   `json:"loading"`
	LoadingMore         bool                   `json:"loadingMore"`
}

// View recomputes the derived view from the stored slots and the current
// navigation query.
func (r *Reconciler[T]) View(ctx context.Context) (View[T], error) {
	current, err := r.CurrentListing(ctx)
	if err != nil {
		return View[T]{}, err
	}

	total := current.Total
	limit := listingLimit(current, r.defaults)

	v := View[T]{
		Elements:            current.Elements,
		Total:               total,
		Limit:               limit,
		TotalPages:          totalPages(total, limit),
		CurrentPage:         currentPage(current),
		SortingOrders:       current.Sortings.Orders(),
		CurrentSortingOrder: current.Sorting,
		AvailableFilters:    r.extract(current.Aggregations),
		CurrentFilters:      filters.Current(current.CurrentFilters, r.nav.CurrentQuery()),
		Loading:             r.Loading(),
		LoadingMore:         r.LoadingMore(),
	}
	if v.Elements == nil {
		v.Elements = []T{}
	}
	if v.SortingOrders == nil {
		v.SortingOrders = []domain.Sorting{}
	}
	if v.AvailableFilters == nil {
		v.AvailableFilters = []domain.ListingFilter{}
	}
	return v, nil
}

// listingLimit prefers the listing's own limit, then the default criteria,
// then fallbackLimit. Non-positive values count as absent.
func listingLimit[T any](l *domain.ListingResult[T], defaults domain.Criteria) int {
	if l.Limit > 0 {
		return l.Limit
	}
	if n, ok := defaults.Int(domain.CriteriaLimit); ok && n > 0 {
		return n
	}
	return fallbackLimit
}

func totalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func currentPage[T any](l *domain.ListingResult[T]) int {
	if l.Page > 0 {
		return l.Page
	}
	return 1
}
