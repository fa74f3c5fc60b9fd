package ports

import (
	"context"

	"github.com/userhub/accounts-system/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts. Email
// uniqueness is ultimately enforced by the storage layer (unique index);
// the service performs a lookup-before-insert check on top of it.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	// FindByEmail returns domain.ErrAccountNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// FindByID returns domain.ErrAccountNotFound when no account matches.
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	// List returns accounts whose name matches the optional filter q
	// (substring, case-insensitive). Empty q returns all accounts.
	List(ctx context.Context, q string) ([]*domain.Account, error)
}
