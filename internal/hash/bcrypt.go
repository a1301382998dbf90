// Package hash provides the password hashing collaborator backed by bcrypt.
package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt hashes and verifies passwords with bcrypt.
type Bcrypt struct {
	// cost is the bcrypt work factor.
	cost int
}

// NewBcrypt returns a Bcrypt hasher with the given cost. A cost below
// bcrypt.MinCost falls back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash returns the one-way hash of plaintext.
func (b *Bcrypt) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest.
func (b *Bcrypt) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
