package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/middleware"
	"github.com/mkraev/notehub/internal/models"
)

// NoteService defines the interface for note operations required by the HTTP
// handlers. Every method takes the authenticated principal first; methods
// targeting a note id report both absence and denial as apperr.ErrNotFound.
type NoteService interface {
	Create(ctx context.Context, principalID, title, content string) (*models.Note, error)
	Get(ctx context.Context, principalID, noteID string) (*models.Note, error)
	List(ctx context.Context, principalID string) ([]models.Note, error)
	Update(ctx context.Context, principalID, noteID string, update models.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, principalID, noteID string) error
	Share(ctx context.Context, principalID, noteID, granteeID string) (*models.Note, error)
	Search(ctx context.Context, principalID, text string) ([]models.Note, error)
}

// NoteHandler handles HTTP requests for note CRUD, sharing and search.
type NoteHandler struct {
	NoteService NoteService
	Log         *zap.Logger
}

// noteRequest represents the JSON payload for note creation and update.
type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Create handles POST /api/notes and responds 201 with the stored note.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, apperr.Validation("body", "must be valid JSON"))
		return
	}

	var title, content string
	if req.Title != nil {
		title = *req.Title
	}
	if req.Content != nil {
		content = *req.Content
	}

	note, err := h.NoteService.Create(r.Context(), principal, title, content)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// List handles GET /api/notes. It returns every note the principal owns or
// has been granted, in no guaranteed order.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	notes, err := h.NoteService.List(r.Context(), principal)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	note, err := h.NoteService.Get(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Update handles PUT /api/notes/{id}. Only title and content can change;
// fields absent from the body are left as they are.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, apperr.Validation("body", "must be valid JSON"))
		return
	}

	note, err := h.NoteService.Update(r.Context(), principal, chi.URLParam(r, "id"),
		models.NoteUpdate{Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	if err := h.NoteService.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "note deleted"})
}

// Share handles POST /api/notes/{id}/share. The grantee id is taken as
// given; sharing never validates that the account exists, mirroring the
// add-to-set semantics of the store.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	var req struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Log, apperr.Validation("body", "must be valid JSON"))
		return
	}

	note, err := h.NoteService.Share(r.Context(), principal, chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// Search handles GET /api/search?q=. It returns the eligible matches only;
// an empty q is rejected with 400.
func (h *NoteHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipalFromContext(r.Context())

	notes, err := h.NoteService.Search(r.Context(), principal, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}
