// Package models defines the core data structures for accounts and notes.
package models

// Account represents a registered user with credentials.
type Account struct {
	// ID is the unique identifier for the account.
	ID string `json:"id"`
	// Email is the login email, stored lowercased.
	Email string `json:"email"`
	// PasswordHash is the one-way hash of the account password.
	PasswordHash string `json:"-"`
}

// Note holds a single note together with its access-control data.
type Note struct {
	// ID is the unique identifier for the note.
	ID string `json:"id"`
	// Owner is the account id of the note creator. Immutable after creation.
	Owner string `json:"owner"`
	// Title is the note title.
	Title string `json:"title"`
	// Content is the note body.
	Content string `json:"content"`
	// SharedWith lists account ids granted read access. Never contains Owner.
	SharedWith []string `json:"sharedWith"`
}

// NoteUpdate carries a partial update of a note. Nil fields are left unchanged.
type NoteUpdate struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
