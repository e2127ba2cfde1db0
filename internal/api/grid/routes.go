package grid

import (
	"net/http"

	"github.com/johnwards/propgrid/internal/binding"
)

// RegisterRoutes registers the property grid endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, b *binding.Binder) {
	h := &Handler{binder: b}

	mux.HandleFunc("GET /v1/nodes/{nodeID}/properties", h.List)
	mux.HandleFunc("GET /v1/nodes/{nodeID}/defaultProperty", h.Default)
	mux.HandleFunc("GET /v1/nodes/{nodeID}/properties/{name}", h.Get)
	mux.HandleFunc("PUT /v1/nodes/{nodeID}/properties/{name}", h.Set)
	mux.HandleFunc("POST /v1/nodes/{nodeID}/properties/{name}/reset", h.Reset)
	mux.HandleFunc("GET /v1/nodes/{nodeID}/properties/{name}/history", h.History)
}
