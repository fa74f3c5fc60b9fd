package ports

import (
	"context"

	"github.com/userhub/accounts-system/internal/core/domain"
)

// AuditRepository persists audit events to the account_events trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes audit events handed off by the dispatcher.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink is the fire-and-forget interface the account service uses to
// emit audit events. A failed or dropped event never fails the operation
// that produced it.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
