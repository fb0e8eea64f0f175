package domain

import "time"

// Session is a server-held login record for the web UI. Only the account id is
// stored; the admin flag is re-read from the accounts table on every request so
// a stale session can never grant stale privileges.
type Session struct {
	ID        string // opaque UUID
	AccountID int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
