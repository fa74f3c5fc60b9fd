package domain

// TokenClaims is the identity embedded in a signed token. It mirrors the
// account state at issuance time; a role change after issuance is invisible
// to tokens already in circulation.
type TokenClaims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}
