package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/userhub/accounts-system/internal/core/domain"
	"github.com/userhub/accounts-system/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// tokenClaims is the JWT payload: the identity claim plus registered claims
// carrying the expiry.
type tokenClaims struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService with HS256-signed JWTs.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenService requires a non-empty signing secret; an absent secret is
// a fatal startup condition. A non-positive ttl falls back to 24h.
func NewJWTTokenService(secret string, ttl time.Duration) (*JWTTokenService, error) {
	if secret == "" {
		return nil, errors.New("token signing secret must be provided")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), ttl: ttl}, nil
}

// CreateToken signs the claim set with the configured expiry. The returned
// string is opaque to callers and unforgeable without the secret.
func (s *JWTTokenService) CreateToken(claims domain.TokenClaims) (string, error) {
	now := time.Now()
	tc := tokenClaims{
		ID:   claims.ID,
		Name: claims.Name,
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded claims.
// It returns nil for anything unacceptable: malformed input, a signature
// that does not match, a non-HMAC signing method, or an expired token.
func (s *JWTTokenService) Verify(token string) *domain.TokenClaims {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	if !tc.Role.Valid() {
		return nil
	}
	return &domain.TokenClaims{ID: tc.ID, Name: tc.Name, Role: tc.Role}
}

var _ ports.TokenService = (*JWTTokenService)(nil)
