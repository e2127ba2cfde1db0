package specs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/store"
)

// Handler serves the per-kind spec catalogs that nodes are bound against.
type Handler struct {
	store store.SpecStore
}

// Kinds lists every kind that has a catalog.
func (h *Handler) Kinds(w http.ResponseWriter, r *http.Request) {
	kinds, err := h.store.Kinds(r.Context())
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteCollection(w, kinds)
}

// List returns the catalog of a kind in display order.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context(), r.PathValue("kind"))
	if err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	api.WriteCollection(w, recs)
}

func validate(rec *domain.SpecRecord, index int) []api.ErrorDetail {
	var details []api.ErrorDetail
	if rec.Name == "" {
		details = append(details, api.ErrorDetail{
			Message: fmt.Sprintf("spec %d: name is required", index), Code: "REQUIRED", In: "name",
		})
	}
	if rec.TypeName == "" {
		details = append(details, api.ErrorDetail{
			Message: fmt.Sprintf("spec %d: typeName is required", index), Code: "REQUIRED", In: "typeName",
		})
	}
	return details
}

// Create appends a spec, or inserts it at ?position= when given.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	corrID := api.CorrelationID(ctx)
	kind := r.PathValue("kind")

	var rec domain.SpecRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}
	if details := validate(&rec, 0); len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Spec name and typeName are required", corrID, details))
		return
	}

	var (
		created *domain.SpecRecord
		err     error
	)
	if p := r.URL.Query().Get("position"); p != "" {
		pos, perr := strconv.Atoi(p)
		if perr != nil {
			api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
				fmt.Sprintf("Invalid position: %s", p), corrID, nil))
			return
		}
		created, err = h.store.Insert(ctx, kind, pos, &rec)
	} else {
		created, err = h.store.Append(ctx, kind, &rec)
	}
	if err != nil {
		api.WriteDomainError(ctx, w, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, created)
}

// Replace swaps the whole catalog for the JSON array in the body.
func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	corrID := api.CorrelationID(ctx)

	var recs []domain.SpecRecord
	if err := json.NewDecoder(r.Body).Decode(&recs); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", corrID, nil))
		return
	}
	var details []api.ErrorDetail
	for i := range recs {
		details = append(details, validate(&recs[i], i)...)
	}
	if len(details) > 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Spec name and typeName are required", corrID, details))
		return
	}

	out, err := h.store.Replace(ctx, r.PathValue("kind"), recs)
	if err != nil {
		api.WriteDomainError(ctx, w, err)
		return
	}
	api.WriteCollection(w, out)
}

// Remove deletes the first spec with the given name.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveName(r.Context(), r.PathValue("kind"), r.PathValue("name")); err != nil {
		api.WriteDomainError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type defaultRequest struct {
	Name string `json:"name"`
}

// SetDefault sets the property a host focuses first on nodes of the kind.
// An empty name clears it.
func (h *Handler) SetDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req defaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError("Invalid input JSON", api.CorrelationID(ctx), nil))
		return
	}
	kind := r.PathValue("kind")
	if err := h.store.SetDefaultProperty(ctx, kind, req.Name); err != nil {
		api.WriteDomainError(ctx, w, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"kind": kind, "defaultProperty": req.Name})
}
