// Package service provides business-logic services for authentication and
// note management, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"github.com/mkraev/notehub/internal/apperr"
	"github.com/mkraev/notehub/internal/models"
)

// minPasswordLen is the minimum accepted password length.
const minPasswordLen = 6

// emailRe is a deliberately loose shape check; the unique constraint on the
// store is the real arbiter of usable addresses.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AccountRepository defines the persistence operations required by the
// authentication service.
type AccountRepository interface {
	// Create stores a new account. Returns apperr.ErrConflict if the email
	// is already registered.
	Create(ctx context.Context, account models.Account) error
	// GetByEmail fetches an account by email, case-insensitively.
	// Returns apperr.ErrNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

// PasswordHasher is the opaque one-way hashing collaborator.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints signed session tokens bound to an account id.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	repo   AccountRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(repo AccountRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Register validates the credentials, hashes the password and stores a new
// account, returning its id. Malformed input yields a *apperr.ValidationError
// with the offending field; a taken email yields apperr.ErrConflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if !emailRe.MatchString(email) {
		return "", apperr.Validation("email", "must be a valid email address")
	}
	if len(password) < minPasswordLen {
		return "", apperr.Validation("password", "must be at least 6 characters")
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}

	account := models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: digest,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return "", err
	}
	return account.ID, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password are indistinguishable: both return
// apperr.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", apperr.ErrInvalidCredentials
		}
		return "", err
	}
	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", apperr.ErrInvalidCredentials
	}
	return s.tokens.Issue(account.ID)
}
