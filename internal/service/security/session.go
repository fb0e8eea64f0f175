package security

import (
	"context"
	"time"

	"github.com/google/uuid"

	"microblog/internal/domain"
)

// DefaultSessionTTL is the lifetime of a web UI session.
const DefaultSessionTTL = 24 * time.Hour

// SessionService manages server-held login sessions for the web UI. A session
// stores only the account id; the admin flag is re-read from the accounts
// table by the resolver on every request.
type SessionService struct {
	sessions domain.SessionRepository
	ttl      time.Duration

	now func() time.Time
}

// NewSessionService creates a SessionService. A zero ttl means
// DefaultSessionTTL.
func NewSessionService(sessions domain.SessionRepository, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionService{sessions: sessions, ttl: ttl, now: time.Now}
}

// Create opens a new session for the account and returns it.
func (s *SessionService) Create(ctx context.Context, accountID int64) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the session if it exists and has not expired. An expired
// session is deleted and treated as absent.
func (s *SessionService) Get(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, id)
		return nil, domain.ErrNotFound("session not found")
	}
	return sess, nil
}

// Delete ends the session. Deleting an unknown session is not an error.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// PurgeExpired removes all expired sessions and returns how many were removed.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx)
}
