package core

import (
	"context"
	"time"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate AuditAction = "product_create"
	ActionUpdate AuditAction = "product_update"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	AuditLow    AuditSeverity = "low"
	AuditMedium AuditSeverity = "medium"
	AuditHigh   AuditSeverity = "high"
)

// SeverityOf returns the audit severity for an action.
func SeverityOf(action AuditAction) AuditSeverity {
	switch action {
	case ActionCreate:
		return AuditMedium
	case ActionUpdate:
		return AuditHigh
	default:
		return AuditLow
	}
}

// Mutation describes a successful create or update sent to the remote API.
type Mutation struct {
	Action    AuditAction
	ProductID int
	Payload   Payload
}

// AuditEntry represents a single recorded mutation.
type AuditEntry struct {
	ID        string        `json:"id"`
	Action    AuditAction   `json:"action"`
	Severity  AuditSeverity `json:"severity"`
	ProductID int           `json:"productId"`
	Title     string        `json:"title"`
	Payload   Payload       `json:"payload"`
	IPAddress string        `json:"ipAddress,omitempty"`
	UserAgent string        `json:"userAgent,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Auditor records mutations. Record errors are logged by the caller and never
// fail the mutation itself.
type Auditor interface {
	Record(ctx context.Context, m Mutation) error
}

// NopAuditor discards every mutation.
type NopAuditor struct{}

// Record implements Auditor.
func (NopAuditor) Record(context.Context, Mutation) error { return nil }
