package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/models"
)

// PostgresNoteRepository implements note persistence against PostgreSQL.
//
// Every owner-gated mutation is a single compound statement matching on both
// note id and owner id. Authorization and effect therefore happen atomically,
// and a denied caller gets the same zero-row outcome as a missing note.
type PostgresNoteRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository using the
// provided *sql.DB. db must be a valid connection to a PostgreSQL instance.
func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

// Create inserts a new note owned by note.Owner. The shared-with set starts
// empty regardless of what note carries.
func (r *PostgresNoteRepository) Create(ctx context.Context, note models.Note) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO notes (id, owner_id, title, content, shared_with)
		VALUES ($1, $2, $3, $4, '{}')
		RETURNING id, owner_id, title, content, shared_with
	`, note.ID, note.Owner, note.Title, note.Content)
	return scanNote(row)
}

// GetAccessible fetches the note with the given id if principalID is its
// owner or a member of its shared-with set. Any other outcome, including the
// note existing but being invisible, is apperr.ErrNotFound.
func (r *PostgresNoteRepository) GetAccessible(ctx context.Context, id, principalID string) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, owner_id, title, content, shared_with FROM notes
		WHERE id = $1 AND (owner_id = $2 OR $2 = ANY(shared_with))
	`, id, principalID)
	return scanNote(row)
}

// UpdateOwned applies a partial title/content update to the note with the
// given id, provided ownerID owns it. Owner and shared-with are never touched.
// A non-owner caller observes apperr.ErrNotFound.
func (r *PostgresNoteRepository) UpdateOwned(ctx context.Context, id, ownerID string, update models.NoteUpdate) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE notes
		   SET title = COALESCE($3, title),
		       content = COALESCE($4, content)
		 WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, content, shared_with
	`, id, ownerID, update.Title, update.Content)
	return scanNote(row)
}

// DeleteOwned removes the note with the given id, provided ownerID owns it.
func (r *PostgresNoteRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM notes WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// AddShare grants granteeID read access to the note with the given id,
// provided ownerID owns it. Adding an existing grantee is a no-op, and the
// owner can never enter its own shared-with set.
func (r *PostgresNoteRepository) AddShare(ctx context.Context, id, ownerID, granteeID string) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE notes
		   SET shared_with = CASE
		       WHEN $3 = ANY(shared_with) OR $3 = owner_id THEN shared_with
		       ELSE array_append(shared_with, $3)
		   END
		 WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, title, content, shared_with
	`, id, ownerID, granteeID)
	return scanNote(row)
}

// ListAccessible returns every note principalID may read, i.e. notes it owns
// plus notes shared with it. Order follows the underlying store and is not
// guaranteed.
func (r *PostgresNoteRepository) ListAccessible(ctx context.Context, principalID string) ([]models.Note, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, owner_id, title, content, shared_with FROM notes
		WHERE owner_id = $1 OR $1 = ANY(shared_with)
	`, principalID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	return collectNotes(rows)
}

// scanNote reads a single note row, translating the zero-row outcome into
// apperr.ErrNotFound.
func scanNote(row *sql.Row) (*models.Note, error) {
	var note models.Note
	err := row.Scan(&note.ID, &note.Owner, &note.Title, &note.Content, pq.Array(&note.SharedWith))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan note: %w", err)
	}
	if note.SharedWith == nil {
		note.SharedWith = []string{}
	}
	return &note, nil
}

func collectNotes(rows *sql.Rows) ([]models.Note, error) {
	var notes []models.Note
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Owner, &note.Title, &note.Content, pq.Array(&note.SharedWith)); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if note.SharedWith == nil {
			note.SharedWith = []string{}
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return notes, nil
}
