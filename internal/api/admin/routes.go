package admin

import (
	"database/sql"
	"net/http"
)

// RegisterRoutes registers the admin endpoints on the mux.
func RegisterRoutes(mux *http.ServeMux, db *sql.DB) {
	h := &Handler{db: db}

	mux.HandleFunc("POST /_propgrid/reset", h.Reset)
	mux.HandleFunc("POST /_propgrid/seed", h.SeedData)
	mux.HandleFunc("GET /_propgrid/status", h.Status)
}
