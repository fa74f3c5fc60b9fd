package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/accounts-system/internal/core/domain"
	"github.com/userhub/accounts-system/internal/core/ports"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account // keyed by id
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, a := range r.accounts {
		if a.Email == account.Email {
			return domain.ErrEmailTaken
		}
	}
	r.accounts[account.ID] = cloneAccount(account)
	return nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := r.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	delete(r.accounts, id)
	return nil
}

func (r *stubAccountRepo) List(_ context.Context, q string) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range r.accounts {
		if q == "" || strings.Contains(strings.ToLower(a.Name), strings.ToLower(q)) {
			out = append(out, cloneAccount(a))
		}
	}
	return out, nil
}

type recordingAuditSink struct {
	events []domain.AuditEvent
}

func (s *recordingAuditSink) Enqueue(event domain.AuditEvent) {
	s.events = append(s.events, event)
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (bool, error) { return false, nil }

func newTestService(t *testing.T, repo *stubAccountRepo, limiter ports.LoginRateLimiter, audit ports.AuditSink) (*AccountService, *JWTTokenService) {
	t.Helper()
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}
	tokens, err := NewJWTTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTTokenService: %v", err)
	}
	svc := NewAccountService(repo, hasher, tokens, NewUUIDGenerator(), limiter, audit, zerolog.Nop())
	return svc, tokens
}

// seedAccount inserts an account directly into the stub store with the given role.
func seedAccount(t *testing.T, repo *stubAccountRepo, name, email, password string, role domain.Role) *domain.Account {
	t.Helper()
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewBcryptHasher: %v", err)
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	a := &domain.Account{
		ID:           NewUUIDGenerator().NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return a
}

func TestAccountService_Signup_NameTooShort(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, nil, nil)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Name: "a", Email: "a@example.com", Password: "pw"}); err != domain.ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("no account should be persisted on validation failure")
	}
}

func TestAccountService_Signup_Success(t *testing.T) {
	repo := newStubAccountRepo()
	audit := &recordingAuditSink{}
	svc, tokens := newTestService(t, repo, nil, audit)

	token, err := svc.Signup(context.Background(), ports.SignupInput{Name: "al", Email: "al@example.com", Password: "pw123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}

	claims := tokens.Verify(token)
	if claims == nil {
		t.Fatalf("signup token does not verify")
	}
	if claims.Role != domain.RoleNormal {
		t.Fatalf("new accounts must get role NORMAL, got %s", claims.Role)
	}
	if claims.Name != "al" {
		t.Fatalf("unexpected claim name %q", claims.Name)
	}

	stored, err := repo.FindByEmail(context.Background(), "al@example.com")
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if stored.PasswordHash == "pw123" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if stored.ID != claims.ID {
		t.Fatalf("token claim id %q does not match stored id %q", claims.ID, stored.ID)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditSignup {
		t.Fatalf("expected one signup audit event, got %+v", audit.events)
	}
}

func TestAccountService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, nil, nil)

	if _, err := svc.Signup(context.Background(), ports.SignupInput{Name: "bob", Email: "bob@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(context.Background(), ports.SignupInput{Name: "bobby", Email: "bob@example.com", Password: "pw2"}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("store must contain exactly one account, has %d", len(repo.accounts))
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc, tokens := newTestService(t, repo, nil, nil)
	seedAccount(t, repo, "carol", "carol@example.com", "s3cret", domain.RoleAdmin)

	token, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims := tokens.Verify(token)
	if claims == nil {
		t.Fatalf("login token does not verify")
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("claim role must match stored role, got %s", claims.Role)
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, nil, nil)
	seedAccount(t, repo, "dave", "dave@example.com", "goodpass", domain.RoleNormal)

	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, nil, nil)

	// Unknown email surfaces the same error as a wrong password.
	if _, err := svc.Login(context.Background(), "ghost@example.com", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_Throttled(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, denyLimiter{}, nil)
	seedAccount(t, repo, "eve", "eve@example.com", "pw", domain.RoleNormal)

	if _, err := svc.Login(context.Background(), "eve@example.com", "pw"); err != domain.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAccountService_ListAccounts_RequiresAdmin(t *testing.T) {
	repo := newStubAccountRepo()
	svc, tokens := newTestService(t, repo, nil, nil)

	if _, err := svc.ListAccounts(context.Background(), "bad-token", ""); err != domain.ErrAuthentication {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}

	normal, err := tokens.CreateToken(domain.TokenClaims{ID: "n1", Name: "norm", Role: domain.RoleNormal})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if _, err := svc.ListAccounts(context.Background(), normal, "anything"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for NORMAL caller, got %v", err)
	}
}

func TestAccountService_ListAccounts_AdminFiltered(t *testing.T) {
	repo := newStubAccountRepo()
	svc, tokens := newTestService(t, repo, nil, nil)
	seedAccount(t, repo, "frank", "frank@example.com", "pw", domain.RoleNormal)
	seedAccount(t, repo, "grace", "grace@example.com", "pw", domain.RoleNormal)

	admin, err := tokens.CreateToken(domain.TokenClaims{ID: "a1", Name: "root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	all, err := svc.ListAccounts(context.Background(), admin, "")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(all))
	}

	filtered, err := svc.ListAccounts(context.Background(), admin, "gra")
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "grace" {
		t.Fatalf("unexpected filter result: %+v", filtered)
	}
}

func TestAccountService_DeleteAccount_AuthBeforeExistence(t *testing.T) {
	repo := newStubAccountRepo()
	svc, _ := newTestService(t, repo, nil, nil)

	// Invalid token on a nonexistent id must fail authentication, not
	// reveal whether the id exists.
	if err := svc.DeleteAccount(context.Background(), "no-such-id", "bad-token"); err != domain.ErrAuthentication {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestAccountService_DeleteAccount_NotFound(t *testing.T) {
	repo := newStubAccountRepo()
	svc, tokens := newTestService(t, repo, nil, nil)

	token, err := tokens.CreateToken(domain.TokenClaims{ID: "u1", Name: "henry", Role: domain.RoleNormal})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if err := svc.DeleteAccount(context.Background(), "no-such-id", token); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_DeleteAccount_Authorization(t *testing.T) {
	repo := newStubAccountRepo()
	audit := &recordingAuditSink{}
	svc, tokens := newTestService(t, repo, nil, audit)

	victim := seedAccount(t, repo, "ivan", "ivan@example.com", "pw", domain.RoleNormal)
	other := seedAccount(t, repo, "judy", "judy@example.com", "pw", domain.RoleNormal)

	otherToken, err := tokens.CreateToken(domain.TokenClaims{ID: other.ID, Name: other.Name, Role: other.Role})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	// NORMAL caller cannot delete someone else's account.
	if err := svc.DeleteAccount(context.Background(), victim.ID, otherToken); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Self-delete is allowed.
	if err := svc.DeleteAccount(context.Background(), other.ID, otherToken); err != nil {
		t.Fatalf("self-delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), other.ID); err != domain.ErrAccountNotFound {
		t.Fatalf("account should be gone after self-delete")
	}

	// ADMIN may delete any account.
	adminToken, err := tokens.CreateToken(domain.TokenClaims{ID: "a1", Name: "root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	if err := svc.DeleteAccount(context.Background(), victim.ID, adminToken); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	if len(audit.events) != 2 {
		t.Fatalf("expected 2 delete audit events, got %d", len(audit.events))
	}
	if audit.events[1].ActorID != "a1" || audit.events[1].AccountID != victim.ID {
		t.Fatalf("admin delete audit event must carry actor and target: %+v", audit.events[1])
	}
}
