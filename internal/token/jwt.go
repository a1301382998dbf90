// Package token provides the signed session-token collaborator.
// Tokens are HS256 JWTs carrying the account id as subject with a fixed
// validity window. There is no refresh mechanism.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkraev/notehub/internal/apperr"
)

// DefaultTTL is the validity window of issued tokens.
const DefaultTTL = time.Hour

// JWT issues and verifies HMAC-signed session tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT returns a JWT codec signing with secret. A non-positive ttl falls
// back to DefaultTTL.
func NewJWT(secret []byte, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secret: secret, ttl: ttl}
}

// Issue mints a token bound to accountID, expiring after the configured TTL.
func (j *JWT) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Verify validates raw and returns the bound account id. Malformed tokens,
// bad signatures and elapsed expiry all map to apperr.ErrUnauthorized.
func (j *JWT) Verify(raw string) (string, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return "", apperr.ErrUnauthorized
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperr.ErrUnauthorized
	}
	return claims.Subject, nil
}
