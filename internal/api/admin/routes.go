package admin

import (
	"net/http"

	"github.com/johnwards/storefront/internal/store"
)

// RegisterRoutes registers all admin API endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, b store.Backend) {
	h := &Handler{backend: b}

	mux.HandleFunc("POST /_storefront/reset", h.Reset)
	mux.HandleFunc("GET /_storefront/slots", h.Slots)
}
