package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-system/internal/core/domain"
)

type stubAuditRepo struct {
	inserted []*domain.AuditEvent
	err      error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.AuditEvent) error {
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, event)
	return nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuditEvent{
		AccountID: "u1",
		Action:    domain.AuditLogin,
		ActorID:   "u1",
		Email:     "u1@example.com",
		Timestamp: time.Now().UTC(),
	}
	if err := svc.Record(context.Background(), event); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Action != domain.AuditLogin {
		t.Fatalf("event not persisted: %+v", repo.inserted)
	}
}

func TestAuditService_Record_PropagatesError(t *testing.T) {
	repo := &stubAuditRepo{err: errors.New("mongo down")}
	svc := NewAuditService(repo, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.AuditEvent{AccountID: "u1"}); err == nil {
		t.Fatalf("expected error when repository fails")
	}
}
