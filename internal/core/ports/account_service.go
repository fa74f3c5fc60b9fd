package ports

import (
	"context"

	"github.com/userhub/accounts-system/internal/core/domain"
)

// SignupInput carries the data needed to register a new account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AccountService defines the four account use-cases. Operations that act on
// behalf of a caller take the caller's opaque signed token and perform their
// own authentication and authorization checks.
type AccountService interface {
	// ListAccounts requires an ADMIN token. q optionally filters by name.
	ListAccounts(ctx context.Context, token, q string) ([]domain.AccountView, error)
	// Signup registers a new NORMAL account and returns a token for it.
	Signup(ctx context.Context, input SignupInput) (string, error)
	// Login authenticates by email and password and returns a token.
	Login(ctx context.Context, email, password string) (string, error)
	// DeleteAccount removes the target account. Allowed for an ADMIN caller
	// or for the account owner itself.
	DeleteAccount(ctx context.Context, idToDelete, token string) error
}
