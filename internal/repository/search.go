package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkraev/notehub/internal/models"
)

// PostgresSearchIndex maintains and queries the derived full-text index over
// note titles and content.
//
// The note_search table is written synchronously on every note mutation and
// queried with the caller's eligibility predicate joined in, so a match the
// caller may not read never leaves the store. Result order follows the store
// and is not guaranteed.
type PostgresSearchIndex struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSearchIndex creates a new PostgresSearchIndex using the provided
// *sql.DB. The tsvector GIN index must already exist; establishing it is a
// startup responsibility, see db.InitPostgres.
func NewPostgresSearchIndex(db *sql.DB) *PostgresSearchIndex {
	return &PostgresSearchIndex{DB: db}
}

// Index upserts the tokenized title+content of note, keyed by note id.
func (s *PostgresSearchIndex) Index(ctx context.Context, note models.Note) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO note_search (note_id, vec)
		VALUES ($1, to_tsvector('english', $2 || ' ' || $3))
		ON CONFLICT (note_id) DO UPDATE SET vec = EXCLUDED.vec
	`, note.ID, note.Title, note.Content)
	if err != nil {
		return fmt.Errorf("index note: %w", err)
	}
	return nil
}

// Remove evicts the document for noteID. Removing an unindexed note is a
// no-op.
func (s *PostgresSearchIndex) Remove(ctx context.Context, noteID string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM note_search WHERE note_id = $1`, noteID)
	if err != nil {
		return fmt.Errorf("remove from index: %w", err)
	}
	return nil
}

// Query tokenizes text and returns every matching note principalID may read.
// The eligibility filter is part of the query itself, not applied per item
// afterwards.
func (s *PostgresSearchIndex) Query(ctx context.Context, principalID, text string) ([]models.Note, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT n.id, n.owner_id, n.title, n.content, n.shared_with
		  FROM notes n
		  JOIN note_search ns ON ns.note_id = n.id
		 WHERE (n.owner_id = $1 OR $1 = ANY(n.shared_with))
		   AND ns.vec @@ plainto_tsquery('english', $2)
	`, principalID, text)
	if err != nil {
		return nil, fmt.Errorf("search notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}
