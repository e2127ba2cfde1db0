package specs

import (
	"net/http"

	"github.com/johnwards/propgrid/internal/store"
)

// RegisterRoutes registers the spec catalog endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s.Specs}

	mux.HandleFunc("GET /v1/kinds", h.Kinds)
	mux.HandleFunc("GET /v1/kinds/{kind}/specs", h.List)
	mux.HandleFunc("PUT /v1/kinds/{kind}/specs", h.Replace)
	mux.HandleFunc("POST /v1/kinds/{kind}/specs", h.Create)
	mux.HandleFunc("DELETE /v1/kinds/{kind}/specs/{name}", h.Remove)
	mux.HandleFunc("PUT /v1/kinds/{kind}/defaultProperty", h.SetDefault)
}
