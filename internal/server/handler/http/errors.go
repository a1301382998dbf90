package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/apperr"
)

// errorResponse is the single failure envelope used for every error status.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v with the given status. Encoding failures are ignored;
// the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err onto an HTTP status and writes the shared envelope. Authorization denials arrive here already folded into
// apperr.ErrNotFound, so no 403 can ever leak existence. Unexpected errors
// are logged with detail and surfaced opaquely as 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error()})
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "account already exists"})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, apperr.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad request"})
	case errors.Is(err, apperr.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "note not found"})
	default:
		log.Error("unexpected error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
