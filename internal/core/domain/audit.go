package domain

import "time"

// AuditAction identifies the account operation an audit event records.
type AuditAction string

const (
	AuditSignup AuditAction = "signup"
	AuditLogin  AuditAction = "login"
	AuditDelete AuditAction = "delete"
)

// AuditEvent records a single account operation for the audit trail.
type AuditEvent struct {
	AccountID string
	Action    AuditAction
	ActorID   string // who performed the action; equals AccountID except for admin deletes
	Email     string
	Timestamp time.Time
}
