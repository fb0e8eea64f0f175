// Package governance provides the audit trail for security-relevant actions.
package governance

import (
	"context"
	"log/slog"

	"microblog/internal/domain"
)

// AuditService records and lists audit entries. Recording is best-effort:
// an audit failure is logged but never fails the action that triggered it.
type AuditService struct {
	audit  domain.AuditRepository
	logger *slog.Logger
}

// NewAuditService creates a new AuditService.
func NewAuditService(audit domain.AuditRepository, logger *slog.Logger) *AuditService {
	return &AuditService{audit: audit, logger: logger}
}

// Record appends an ALLOWED entry for a completed action.
func (s *AuditService) Record(ctx context.Context, principal, action, resource string) {
	err := s.audit.Insert(ctx, &domain.AuditEntry{
		Principal: principal,
		Action:    action,
		Resource:  resource,
		Status:    domain.AuditAllowed,
	})
	if err != nil {
		s.logger.Warn("audit insert failed", "action", action, "error", err)
	}
}

// List returns audit entries, newest first.
func (s *AuditService) List(ctx context.Context, page domain.PageRequest) ([]domain.AuditEntry, int64, error) {
	return s.audit.List(ctx, page)
}
