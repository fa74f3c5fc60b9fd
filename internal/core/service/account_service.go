package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-system/internal/core/domain"
	"github.com/userhub/accounts-system/internal/core/ports"
)

// AccountService implements the four account use-cases: list, signup, login,
// delete. It holds no mutable state between calls; all state lives in the
// repository.
type AccountService struct {
	repo    ports.AccountRepository
	hasher  ports.PasswordHasher
	tokens  ports.TokenService
	idgen   ports.IDGenerator
	limiter ports.LoginRateLimiter // optional; nil disables throttling
	audit   ports.AuditSink        // optional; nil disables the audit trail
	log     zerolog.Logger
}

func NewAccountService(
	repo ports.AccountRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	idgen ports.IDGenerator,
	limiter ports.LoginRateLimiter,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		idgen:   idgen,
		limiter: limiter,
		audit:   audit,
		log:     log,
	}
}

// ListAccounts returns the public view of every account matching q.
// Only ADMIN callers may list accounts.
func (s *AccountService) ListAccounts(ctx context.Context, token, q string) ([]domain.AccountView, error) {
	claims := s.tokens.Verify(token)
	if claims == nil {
		return nil, domain.ErrAuthentication
	}
	if claims.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	accounts, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	views := make([]domain.AccountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}
	return views, nil
}

// Signup registers a new account with role NORMAL and returns a signed token
// for it. The email-uniqueness lookup is best-effort; the storage layer's
// unique index closes the race against concurrent signups.
func (s *AccountService) Signup(ctx context.Context, input ports.SignupInput) (string, error) {
	if utf8.RuneCountInString(input.Name) < domain.MinNameLength {
		return "", domain.ErrInvalidName
	}

	_, err := s.repo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return "", domain.ErrEmailTaken
	case !errors.Is(err, domain.ErrAccountNotFound):
		return "", fmt.Errorf("signup: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}

	account := &domain.Account{
		ID:           s.idgen.NewID(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleNormal,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("signup: create account: %w", err)
	}

	token, err := s.tokens.CreateToken(domain.TokenClaims{
		ID:   account.ID,
		Name: account.Name,
		Role: account.Role,
	})
	if err != nil {
		return "", fmt.Errorf("signup: issue token: %w", err)
	}

	s.log.Info().Str("account_id", account.ID).Msg("account created")
	s.emitAudit(account.ID, domain.AuditSignup, account.ID, account.Email)

	return token, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password surface the same error so callers cannot probe which accounts
// exist.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("rate limiter unavailable, allowing attempt")
		} else if !ok {
			return "", domain.ErrTooManyAttempts
		}
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Compare(password, account.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(domain.TokenClaims{
		ID:   account.ID,
		Name: account.Name,
		Role: account.Role,
	})
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	s.emitAudit(account.ID, domain.AuditLogin, account.ID, account.Email)

	return token, nil
}

// DeleteAccount removes the target account. The caller token is verified
// before the target lookup so an unauthenticated caller cannot learn whether
// an id exists from the error kind.
func (s *AccountService) DeleteAccount(ctx context.Context, idToDelete, token string) error {
	claims := s.tokens.Verify(token)
	if claims == nil {
		return domain.ErrAuthentication
	}

	target, err := s.repo.FindByID(ctx, idToDelete)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf("delete account: lookup: %w", err)
	}

	if claims.Role != domain.RoleAdmin && claims.ID != target.ID {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.log.Info().Str("account_id", target.ID).Str("actor_id", claims.ID).Msg("account deleted")
	s.emitAudit(target.ID, domain.AuditDelete, claims.ID, target.Email)

	return nil
}

func (s *AccountService) emitAudit(accountID string, action domain.AuditAction, actorID, email string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		AccountID: accountID,
		Action:    action,
		ActorID:   actorID,
		Email:     email,
		Timestamp: time.Now().UTC(),
	})
}

var _ ports.AccountService = (*AccountService)(nil)
