package listings

import "net/http"

// RegisterRoutes registers the listing endpoints for every reconciler in reg.
func RegisterRoutes(mux *http.ServeMux, reg *Registry) {
	h := &Handler{registry: reg}

	mux.HandleFunc("GET /storefront/v1/listings", h.Index)
	mux.HandleFunc("GET /storefront/v1/listings/{listingKey}", h.Get)
	mux.HandleFunc("PUT /storefront/v1/listings/{listingKey}/initial", h.SetInitial)
	mux.HandleFunc("POST /storefront/v1/listings/{listingKey}/init", h.InitSearch)
	mux.HandleFunc("POST /storefront/v1/listings/{listingKey}/search", h.Search)
	mux.HandleFunc("POST /storefront/v1/listings/{listingKey}/load-more", h.LoadMore)
	mux.HandleFunc("POST /storefront/v1/listings/{listingKey}/sorting", h.ChangeSorting)
	mux.HandleFunc("POST /storefront/v1/listings/{listingKey}/page", h.ChangePage)
}
