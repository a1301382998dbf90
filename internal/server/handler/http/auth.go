// Package http provides HTTP routing and handlers for the notehub API.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/apperr"
)

// AuthService defines the interface for authentication operations required
// by the HTTP handlers.
type AuthService interface {
	// Register creates a new account and returns its id.
	Register(ctx context.Context, email, password string) (string, error)
	// Login verifies credentials and returns a session token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log is the structured logger for unexpected failures.
	Log *zap.Logger
}

// credentialsRequest represents the JSON payload for signup and login.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/signup.
// It expects a JSON body with "email" and "password" and responds 201 with
// the new account id. Duplicate emails and rejected input both map to 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, apperr.Validation("body", "must be valid JSON"))
		return
	}

	id, err := h.AuthService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":  id,
		"msg": "user registered successfully",
	})
}

// Login handles POST /api/auth/login.
// On success it responds 200 with a session token valid for one hour.
// Unknown email and wrong password produce the same 400 response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, apperr.Validation("body", "must be valid JSON"))
		return
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
