package listings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/storefront/internal/api"
	"github.com/johnwards/storefront/internal/domain"
	"github.com/johnwards/storefront/internal/listing"
)

// Handler serves the listing endpoints under /storefront/v1/listings.
type Handler struct {
	registry *Registry
}

// Response is the body of every successful listing request.
type Response struct {
	Listing string          `json:"listing"`
	Query   domain.Criteria `json:"query"`
	View    any             `json:"view"`
}

type searchRequest struct {
	Criteria           domain.Criteria `json:"criteria"`
	PreventRouteChange bool            `json:"preventRouteChange"`
}

type sortingRequest struct {
	Order string `json:"order"`
}

type pageRequest struct {
	Page *int `json:"page"`
}

// Index handles GET /storefront/v1/listings.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, api.CollectionResponse[string]{Results: h.registry.Keys()})
}

// Get handles GET /storefront/v1/listings/{listingKey}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(context.Context, endpoint) error { return nil })
}

// SetInitial handles PUT /storefront/v1/listings/{listingKey}/initial.
func (h *Handler) SetInitial(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decode(w, r, &raw) {
		return
	}
	if len(raw) == 0 {
		writeValidation(w, r, "listing body is required", "body")
		return
	}
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.setInitial(ctx, raw)
	})
}

// InitSearch handles POST /storefront/v1/listings/{listingKey}/init.
func (h *Handler) InitSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.initSearch(ctx, req.Criteria)
	})
}

// Search handles POST /storefront/v1/listings/{listingKey}/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.search(ctx, req.Criteria, listing.SearchOptions{PreventRouteChange: req.PreventRouteChange})
	})
}

// LoadMore handles POST /storefront/v1/listings/{listingKey}/load-more.
func (h *Handler) LoadMore(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.loadMore(ctx)
	})
}

// ChangeSorting handles POST /storefront/v1/listings/{listingKey}/sorting.
func (h *Handler) ChangeSorting(w http.ResponseWriter, r *http.Request) {
	var req sortingRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Order == "" {
		writeValidation(w, r, "order is required", "order")
		return
	}
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.changeSorting(ctx, req.Order)
	})
}

// ChangePage handles POST /storefront/v1/listings/{listingKey}/page.
func (h *Handler) ChangePage(w http.ResponseWriter, r *http.Request) {
	var req pageRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Page == nil {
		writeValidation(w, r, "page is required", "page")
		return
	}
	h.act(w, r, func(ctx context.Context, e endpoint) error {
		return e.changePage(ctx, *req.Page)
	})
}

// act resolves the listing, runs fn and answers with the resulting view.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, fn func(context.Context, endpoint) error) {
	ctx := r.Context()
	key := r.PathValue("listingKey")

	e, err := h.registry.lookup(key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := fn(ctx, e); err != nil {
		writeError(w, r, err)
		return
	}

	view, err := e.view(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, Response{Listing: key, Query: e.query(), View: view})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := api.DecodeJSON(r, v); err != nil {
		writeValidation(w, r, err.Error(), "body")
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, r *http.Request, message, in string) {
	corrID := api.CorrelationID(r.Context())
	api.WriteError(w, http.StatusBadRequest, api.NewValidationError(message, corrID, []api.ErrorDetail{
		{Message: message, In: in},
	}))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())

	var decErr *decodeError
	var storeErr *listing.StoreError
	switch {
	case errors.Is(err, ErrUnknownListing):
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), corrID))
	case errors.As(err, &decErr):
		writeValidation(w, r, err.Error(), "body")
	case errors.As(err, &storeErr):
		slog.Error("listing store failure", "error", err, "correlationId", corrID)
		api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(err.Error(), corrID))
	default:
		slog.Warn("listing search failed", "error", err, "correlationId", corrID)
		api.WriteError(w, http.StatusBadGateway, api.NewUpstreamError(err.Error(), corrID))
	}
}
