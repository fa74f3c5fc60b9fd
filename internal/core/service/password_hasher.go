package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/accounts-system/internal/core/ports"
)

// BcryptHasher implements ports.PasswordHasher using bcrypt. The cost factor
// comes from configuration so the work factor can follow hardware over time.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher validates the configured cost factor up front. An invalid
// cost is a startup misconfiguration, not a per-call error.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d,%d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

// Hash produces a salted one-way hash of plaintext. bcrypt embeds a random
// salt, so hashing the same plaintext twice yields different outputs.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Compare verifies plaintext against a stored hash in constant time.
// Any mismatch or malformed hash yields false.
func (h *BcryptHasher) Compare(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

var _ ports.PasswordHasher = (*BcryptHasher)(nil)
