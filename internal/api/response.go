package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// CollectionResponse is the envelope of every list response.
type CollectionResponse[T any] struct {
	Results []T `json:"results"`
}

// WriteCollection writes items as a CollectionResponse. A nil slice is
// written as an empty list.
func WriteCollection[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, CollectionResponse[T]{Results: items})
}
