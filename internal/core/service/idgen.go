package service

import (
	"github.com/google/uuid"

	"github.com/userhub/accounts-system/internal/core/ports"
)

// UUIDGenerator implements ports.IDGenerator with random (v4) UUIDs.
// Stateless; collision probability across the system lifetime is negligible.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var _ ports.IDGenerator = (*UUIDGenerator)(nil)
