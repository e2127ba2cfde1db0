package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/propgrid/internal/api"
	"github.com/johnwards/propgrid/internal/database"
	"github.com/johnwards/propgrid/internal/seed"
)

// Handler serves the admin API at /_propgrid/.
type Handler struct {
	db *sql.DB
}

// dataTableNames lists all data tables in foreign-key-safe deletion order.
var dataTableNames = []string{
	"attribute_history",
	"attribute_values",
	"nodes",
	"property_specs",
	"kind_settings",
}

// ResetData clears all data tables in one transaction and re-seeds.
func ResetData(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range dataTableNames {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
			return fmt.Errorf("clear table %s: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return seed.Seed(ctx, db)
}

func writeInternal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.ErrorContext(r.Context(), msg, "error", err)
	api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(api.CorrelationID(r.Context())))
}

// Reset drops all data and re-runs the seed.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := ResetData(r.Context(), h.db); err != nil {
		writeInternal(w, r, "reset failed", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs the seed without dropping existing data first.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	if err := seed.Seed(r.Context(), h.db); err != nil {
		writeInternal(w, r, "seed failed", err)
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type status struct {
	SchemaVersion int            `json:"schemaVersion"`
	Latest        int            `json:"latestVersion"`
	Rows          map[string]int `json:"rows"`
}

// Status reports the schema version and row counts of the data tables.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v, err := database.Version(ctx, h.db)
	if err != nil {
		writeInternal(w, r, "read schema version", err)
		return
	}

	st := status{SchemaVersion: v, Latest: database.Latest(), Rows: make(map[string]int, len(dataTableNames))}
	for _, table := range dataTableNames {
		var n int
		if err := h.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&n); err != nil { //nolint:gosec // table names are hardcoded constants
			writeInternal(w, r, "count rows", err)
			return
		}
		st.Rows[table] = n
	}
	api.WriteJSON(w, http.StatusOK, st)
}
