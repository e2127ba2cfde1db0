package grid

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/binding"
)

// Handler serves a node's property grid: enumeration, reads, writes and
// resets through the node's dynamic property set.
type Handler struct {
	binder *binding.Binder
}

// setRequest is the body of a property write. A null value clears the
// stored value.
type setRequest struct {
	Value any `json:"value"`
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request) (*binding.Binding, bool) {
	bd, err := h.binder.Bind(r.Context(), r.PathValue("nodeID"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return nil, false
	}
	return bd, true
}

// List enumerates the node's properties with their values. Hidden
// properties are included only with ?all=true; ?q= filters by name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	all, _ := strconv.ParseBool(q.Get("all"))

	g, err := bd.Grid(r.Context(), binding.GridOptions{All: all, Query: q.Get("q")})
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, g)
}

// Default returns the property a host should focus first.
func (h *Handler) Default(w http.ResponseWriter, r *http.Request) {
	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	v, err := bd.Default(r.Context())
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}

// Get returns one property with its value.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	v, err := bd.Property(r.Context(), r.PathValue("name"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, v)
}

// Set writes a property value. When the property triggers refresh the
// response carries the re-enumerated grid.
func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	corrID := api.CorrelationID(r.Context())

	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}

	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	res, err := bd.Set(r.Context(), r.PathValue("name"), req.Value)
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// Reset restores a property to its default.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	res, err := bd.Reset(r.Context(), r.PathValue("name"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, res)
}

// History returns recent writes to a property, newest first. ?limit= caps
// the number of entries, default 50.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}

	bd, ok := h.bind(w, r)
	if !ok {
		return
	}
	changes, err := bd.History(r.Context(), r.PathValue("name"), limit)
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteCollection(w, changes)
}
