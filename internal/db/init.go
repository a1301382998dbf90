package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    shared_with TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS note_search (
    note_id TEXT PRIMARY KEY REFERENCES notes(id) ON DELETE CASCADE,
    vec tsvector NOT NULL
);

CREATE INDEX IF NOT EXISTS note_search_vec_idx ON note_search USING GIN (vec);
CREATE INDEX IF NOT EXISTS notes_owner_idx ON notes (owner_id);
`

// InitPostgres opens a PostgreSQL connection and establishes the schema,
// including the full-text index. Search relies on the index existing, so a
// failure here must abort startup rather than be retried lazily per request.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
