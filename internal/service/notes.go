package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/models"
)

// NoteRepository defines the persistence operations needed by the NoteService.
// Owner-gated mutations must match on id and owner atomically and report a
// miss as apperr.ErrNotFound, whether the note is absent or merely invisible.
type NoteRepository interface {
	Create(ctx context.Context, note models.Note) (*models.Note, error)
	GetAccessible(ctx context.Context, id, principalID string) (*models.Note, error)
	UpdateOwned(ctx context.Context, id, ownerID string, update models.NoteUpdate) (*models.Note, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
	AddShare(ctx context.Context, id, ownerID, granteeID string) (*models.Note, error)
	ListAccessible(ctx context.Context, principalID string) ([]models.Note, error)
}

// SearchIndex defines the derived text index kept in step with the note store.
type SearchIndex interface {
	Index(ctx context.Context, note models.Note) error
	Remove(ctx context.Context, noteID string) error
	Query(ctx context.Context, principalID, text string) ([]models.Note, error)
}

// NoteService implements note CRUD, sharing and search on top of a
// NoteRepository and a SearchIndex. The index is updated synchronously on
// every create, update and delete; the background sweeper repairs any row a
// failed index write left behind.
type NoteService struct {
	repo  NoteRepository
	index SearchIndex
	log   *zap.Logger
}

// NewNoteService constructs a NoteService from its collaborators.
func NewNoteService(repo NoteRepository, index SearchIndex, log *zap.Logger) *NoteService {
	return &NoteService{repo: repo, index: index, log: log}
}

// Create stores a new note owned by principalID and indexes it.
func (s *NoteService) Create(ctx context.Context, principalID, title, content string) (*models.Note, error) {
	note, err := s.repo.Create(ctx, models.Note{
		ID:      uuid.NewString(),
		Owner:   principalID,
		Title:   title,
		Content: content,
	})
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, *note)
	return note, nil
}

// Get returns the note if principalID may read it, apperr.ErrNotFound
// otherwise.
func (s *NoteService) Get(ctx context.Context, principalID, noteID string) (*models.Note, error) {
	return s.repo.GetAccessible(ctx, noteID, principalID)
}

// List returns every note principalID may read, in store order.
func (s *NoteService) List(ctx context.Context, principalID string) ([]models.Note, error) {
	return s.repo.ListAccessible(ctx, principalID)
}

// Update applies a partial title/content update if principalID owns the note,
// then refreshes the index. Non-owners observe apperr.ErrNotFound.
func (s *NoteService) Update(ctx context.Context, principalID, noteID string, update models.NoteUpdate) (*models.Note, error) {
	note, err := s.repo.UpdateOwned(ctx, noteID, principalID, update)
	if err != nil {
		return nil, err
	}
	s.reindex(ctx, *note)
	return note, nil
}

// Delete removes the note if principalID owns it and evicts it from the
// index. Non-owners observe apperr.ErrNotFound.
func (s *NoteService) Delete(ctx context.Context, principalID, noteID string) error {
	if err := s.repo.DeleteOwned(ctx, noteID, principalID); err != nil {
		return err
	}
	if err := s.index.Remove(ctx, noteID); err != nil {
		s.log.Error("failed to remove note from search index",
			zap.String("note_id", noteID), zap.Error(err))
	}
	return nil
}

// Share grants granteeID read access if principalID owns the note. Sharing
// with an existing grantee, or with the owner, is a no-op.
func (s *NoteService) Share(ctx context.Context, principalID, noteID, granteeID string) (*models.Note, error) {
	if granteeID == "" {
		return nil, apperr.Validation("userId", "must not be empty")
	}
	return s.repo.AddShare(ctx, noteID, principalID, granteeID)
}

// Search runs a full-text query over the notes principalID may read. An
// empty or blank query is rejected with apperr.ErrBadRequest. Result order
// is not guaranteed.
func (s *NoteService) Search(ctx context.Context, principalID, text string) ([]models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.ErrBadRequest
	}
	return s.index.Query(ctx, principalID, text)
}

// reindex upserts the note into the search index. Index failures do not fail
// the request; the sweeper converges the row later.
func (s *NoteService) reindex(ctx context.Context, note models.Note) {
	if err := s.index.Index(ctx, note); err != nil {
		s.log.Error("failed to index note",
			zap.String("note_id", note.ID), zap.Error(err))
	}
}
