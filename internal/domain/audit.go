package domain

import "time"

// Audit entry statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
)

// AuditEntry records a security-relevant action. Entries are append-only.
type AuditEntry struct {
	ID        int64
	Principal string
	Action    string
	Resource  string
	Status    string
	CreatedAt time.Time
}
