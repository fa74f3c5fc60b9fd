package ports

import (
	"context"

	"github.com/userhub/accounts-system/internal/core/domain"
)

// PasswordHasher provides one-way salted hashing of plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Compare reports whether plaintext matches hash. It is constant-time
	// with respect to the secret content and returns false (never an error)
	// for a mismatch or a malformed hash.
	Compare(plaintext, hash string) bool
}

// TokenService issues and verifies signed, tamper-evident tokens.
type TokenService interface {
	CreateToken(claims domain.TokenClaims) (string, error)
	// Verify returns nil for any malformed, tampered, or expired token.
	// Callers treat a nil result uniformly as "not authenticated".
	Verify(token string) *domain.TokenClaims
}

// IDGenerator produces globally-unique account identifiers.
type IDGenerator interface {
	NewID() string
}

// LoginRateLimiter throttles authentication attempts per login identifier.
type LoginRateLimiter interface {
	// Allow reports whether another attempt for the given email is permitted.
	Allow(ctx context.Context, email string) (bool, error)
}
