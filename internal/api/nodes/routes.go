package nodes

import (
	"net/http"

	"github.com/johnwards/propgrid/internal/store"
)

// RegisterRoutes registers the scene node endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{nodes: s.Nodes, specs: s.Specs}

	mux.HandleFunc("GET /v1/nodes", h.List)
	mux.HandleFunc("POST /v1/nodes", h.Create)
	mux.HandleFunc("GET /v1/nodes/{nodeID}", h.Get)
	mux.HandleFunc("DELETE /v1/nodes/{nodeID}", h.Delete)
}
