package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/johnwards/storefront/internal/api"
	"github.com/johnwards/storefront/internal/store"
)

// Handler serves the admin API at /_storefront/.
type Handler struct {
	backend store.Backend
}

// Reset clears every stored listing slot.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.backend.Reset(ctx); err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("failed to clear slots: %s", err), api.CorrelationID(ctx)))
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Slots returns stored slots, most recently written first, with cursor-based
// pagination.
func (h *Handler) Slots(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	var afterID int64
	if v := r.URL.Query().Get("after"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			afterID = n
		}
	}

	page, err := h.backend.List(r.Context(), store.ListOpts{Limit: limit, After: afterID})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError,
			api.NewInternalError(fmt.Sprintf("list slots: %s", err), api.CorrelationID(r.Context())))
		return
	}

	resp := api.CollectionResponse[*store.SlotRecord]{Results: page.Results}
	if resp.Results == nil {
		resp.Results = []*store.SlotRecord{}
	}
	if page.HasMore {
		resp.Paging = &api.Paging{
			Next: &api.PagingNext{
				After: strconv.FormatInt(page.After, 10),
			},
		}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}
