package handler

import "github.com/userhub/accounts-system/internal/core/domain"

// --- Request / Response types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// tokenResponse carries the opaque signed token issued by signup and login.
type tokenResponse struct {
	Token string `json:"token"`
}

type listAccountsResponse struct {
	Accounts []domain.AccountView `json:"accounts"`
}
