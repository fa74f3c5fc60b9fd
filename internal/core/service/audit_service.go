package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/accounts-system/internal/core/domain"
	"github.com/userhub/accounts-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// trail. Failures are surfaced to the dispatcher for logging; they never
// reach the operation that produced the event.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("account_id", event.AccountID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
