package domain

import (
	"errors"
	"time"
)

// Role is the coarse privilege level attached to an account.
type Role string

const (
	RoleNormal Role = "NORMAL"
	RoleAdmin  Role = "ADMIN"
)

// Valid reports whether r is one of the two supported roles.
func (r Role) Valid() bool {
	return r == RoleNormal || r == RoleAdmin
}

var ErrInvalidName = errors.New("name must be at least 2 characters")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAuthentication = errors.New("authentication failed")
var ErrForbidden = errors.New("access forbidden")
var ErrAccountNotFound = errors.New("account not found")
var ErrTooManyAttempts = errors.New("too many login attempts")

// MinNameLength is the minimum accepted display-name length at signup.
const MinNameLength = 2

// Account models one registered user. PasswordHash never leaves the
// persistence boundary; the json tag keeps it out of any serialized view.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountView is the public projection of an Account returned by list
// and lookup operations.
type AccountView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// View returns the public projection of a.
func (a *Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}
