package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/johnwards/propgrid/internal/binding"
	"github.com/johnwards/propgrid/internal/dynprop"
	"github.com/johnwards/propgrid/internal/store"
)

// WriteDomainError maps an error from the store or binding layers to its
// HTTP status and error envelope. Unrecognised errors are logged and
// reported as 500 without their message.
func WriteDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	corrID := CorrelationID(ctx)

	var typeErr *dynprop.TypeError
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, binding.ErrPropertyNotFound):
		WriteError(w, http.StatusNotFound, NewNotFoundError(err.Error(), corrID))
	case errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusConflict, NewConflictError(err.Error(), corrID))
	case errors.Is(err, binding.ErrReadOnly):
		WriteError(w, http.StatusBadRequest, NewReadOnlyError(err.Error(), corrID))
	case errors.As(err, &typeErr):
		WriteError(w, http.StatusBadRequest, NewTypeError(typeErr.Error(), corrID))
	case errors.Is(err, store.ErrPositionOutOfRange):
		WriteError(w, http.StatusBadRequest, NewValidationError(err.Error(), corrID, nil))
	default:
		slog.ErrorContext(ctx, "request failed", "error", err, "correlationId", corrID)
		WriteError(w, http.StatusInternalServerError, NewInternalError(corrID))
	}
}
