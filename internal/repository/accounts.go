// Package repository provides PostgreSQL persistence for accounts, notes and
// the derived search index.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/models"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// PostgresAccountRepository implements account persistence against PostgreSQL.
type PostgresAccountRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAccountRepository creates a new PostgresAccountRepository with
// the given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresAccountRepository(db *sql.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{DB: db}
}

// Create stores a new account. Emails are unique case-insensitively; the
// repository lowercases before insert and maps a duplicate to
// apperr.ErrConflict.
func (r *PostgresAccountRepository) Create(ctx context.Context, account models.Account) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO accounts (id, email, password_hash) VALUES ($1, $2, $3)`,
		account.ID, strings.ToLower(account.Email), account.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetByEmail fetches an account by email, case-insensitively.
// Returns apperr.ErrNotFound if no account matches.
func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, email, password_hash FROM accounts WHERE email = $1`,
		strings.ToLower(email),
	).Scan(&account.ID, &account.Email, &account.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account by email: %w", err)
	}
	return &account, nil
}
