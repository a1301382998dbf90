package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/models"
)

var errStore = errors.New("store failure")

// fakeNoteService implements NoteService with canned returns.
type fakeNoteService struct {
	note  *models.Note
	notes []models.Note
	err   error
}

func (f *fakeNoteService) Create(ctx context.Context, principalID, title, content string) (*models.Note, error) {
	return f.note, f.err
}
func (f *fakeNoteService) Get(ctx context.Context, principalID, noteID string) (*models.Note, error) {
	return f.note, f.err
}
func (f *fakeNoteService) List(ctx context.Context, principalID string) ([]models.Note, error) {
	return f.notes, f.err
}
func (f *fakeNoteService) Update(ctx context.Context, principalID, noteID string, update models.NoteUpdate) (*models.Note, error) {
	return f.note, f.err
}
func (f *fakeNoteService) Delete(ctx context.Context, principalID, noteID string) error {
	return f.err
}
func (f *fakeNoteService) Share(ctx context.Context, principalID, noteID, granteeID string) (*models.Note, error) {
	return f.note, f.err
}
func (f *fakeNoteService) Search(ctx context.Context, principalID, text string) ([]models.Note, error) {
	return f.notes, f.err
}

func newNoteHandler(svc NoteService) *NoteHandler {
	return &NoteHandler{NoteService: svc, Log: zap.NewNop()}
}

func TestNoteHandler_Create(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeNoteService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{`,
			service:      &fakeNoteService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "store failure",
			body:         `{"title":"trip","content":"plan the trip"}`,
			service:      &fakeNoteService{err: errStore},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			body:         `{"title":"trip","content":"plan the trip"}`,
			service:      &fakeNoteService{note: &models.Note{ID: "n1", Owner: "a", Title: "trip"}},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/notes", bytes.NewBufferString(tt.body))
			newNoteHandler(tt.service).Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

// Denied and missing notes produce the same 404 body, so a prober cannot
// tell them apart.
func TestNoteHandler_GetNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/notes/n1", nil)
	newNoteHandler(&fakeNoteService{err: apperr.ErrNotFound}).Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if payload["error"] != "note not found" {
		t.Errorf("error = %q; want note not found", payload["error"])
	}
}

func TestNoteHandler_ListEmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/notes", nil)
	newNoteHandler(&fakeNoteService{}).List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(body, []byte("[]")) {
		t.Errorf("body = %s; want []", body)
	}
}

func TestNoteHandler_Update(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeNoteService
		expectedCode int
	}{
		{"not owner", &fakeNoteService{err: apperr.ErrNotFound}, http.StatusNotFound},
		{"success", &fakeNoteService{note: &models.Note{ID: "n1", Owner: "a"}}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("PUT", "/api/notes/n1", bytes.NewBufferString(`{"title":"new"}`))
			newNoteHandler(tt.service).Update(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	tests := []struct {
		name         string
		service      *fakeNoteService
		expectedCode int
	}{
		{"not owner", &fakeNoteService{err: apperr.ErrNotFound}, http.StatusNotFound},
		{"success", &fakeNoteService{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("DELETE", "/api/notes/n1", nil)
			newNoteHandler(tt.service).Delete(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestNoteHandler_Share(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeNoteService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{`,
			service:      &fakeNoteService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "not owner",
			body:         `{"userId":"b"}`,
			service:      &fakeNoteService{err: apperr.ErrNotFound},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "success",
			body:         `{"userId":"b"}`,
			service:      &fakeNoteService{note: &models.Note{ID: "n1", Owner: "a", SharedWith: []string{"b"}}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/notes/n1/share", bytes.NewBufferString(tt.body))
			newNoteHandler(tt.service).Share(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestNoteHandler_Search(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		service      *fakeNoteService
		expectedCode int
	}{
		{
			name:         "missing q",
			query:        "",
			service:      &fakeNoteService{err: apperr.ErrBadRequest},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "success",
			query:        "?q=apple",
			service:      &fakeNoteService{notes: []models.Note{{ID: "n1", Owner: "a"}}},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/search"+tt.query, nil)
			newNoteHandler(tt.service).Search(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}
