package nodes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/store"
)

// Handler serves the scene node endpoints.
type Handler struct {
	nodes store.NodeStore
	specs store.SpecStore
}

// List returns all nodes, or only those of the kind given in ?kind=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	nodes, err := h.nodes.List(r.Context(), r.URL.Query().Get("kind"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteCollection(w, nodes)
}

// Get returns one node.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	n, err := h.nodes.Get(r.Context(), r.PathValue("nodeID"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, n)
}

// Create adds a node. The kind must have a spec catalog.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	corrID := api.CorrelationID(ctx)

	var n domain.Node
	if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	var details []api.ErrorDetail
	if n.Kind == "" {
		details = append(details, api.ErrorDetail{Message: "kind is required", Code: "REQUIRED", In: "kind"})
	}
	if n.Name == "" {
		details = append(details, api.ErrorDetail{Message: "name is required", Code: "REQUIRED", In: "name"})
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Node kind and name are required", corrID, details))
		return
	}

	recs, err := h.specs.List(ctx, n.Kind)
	if err != nil {
		api.WriteDomainError(ctx, w, err)
		return
	}
	if len(recs) == 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("Unknown node kind: %s", n.Kind), corrID, nil))
		return
	}

	created, err := h.nodes.Create(ctx, &n)
	if err != nil {
		api.WriteDomainError(ctx, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Delete removes a node together with its attribute values and history.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.nodes.Delete(r.Context(), r.PathValue("nodeID")); err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
