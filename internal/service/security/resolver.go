package security

import (
	"context"
	"errors"

	"microblog/internal/domain"
)

// Resolver turns a request credential into the acting principal. Two
// transports are supported: a bearer token (API path) and a server-side
// session id (web UI path). Both re-fetch the account on every request so an
// admin-flag change takes effect immediately; a cached admin flag from a
// long-lived credential is never trusted.
type Resolver struct {
	tokens   *TokenService
	sessions *SessionService
	accounts domain.AccountRepository
}

// NewResolver creates a Resolver.
func NewResolver(tokens *TokenService, sessions *SessionService, accounts domain.AccountRepository) *Resolver {
	return &Resolver{tokens: tokens, sessions: sessions, accounts: accounts}
}

// ResolveBearer verifies a bearer token and returns the current principal.
// Expired and tampered tokens are distinguished in the message only; both are
// UnauthenticatedError to callers.
func (r *Resolver) ResolveBearer(ctx context.Context, token string) (domain.Principal, error) {
	accountID, err := r.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return domain.Principal{}, domain.ErrUnauthenticated("session expired, log in again")
		}
		return domain.Principal{}, domain.ErrUnauthenticated("invalid token")
	}
	return r.principalForAccount(ctx, accountID)
}

// ResolveSession looks up a server-side session and returns the current
// principal.
func (r *Resolver) ResolveSession(ctx context.Context, sessionID string) (domain.Principal, error) {
	sess, err := r.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Principal{}, domain.ErrUnauthenticated("not logged in")
	}
	return r.principalForAccount(ctx, sess.AccountID)
}

// principalForAccount re-reads the account so the principal carries the
// current is_admin flag. A credential whose subject no longer exists (deleted
// account) resolves to Unauthenticated, never to a stale principal.
func (r *Resolver) principalForAccount(ctx context.Context, accountID int64) (domain.Principal, error) {
	account, err := r.accounts.GetByID(ctx, accountID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Principal{}, domain.ErrUnauthenticated("account no longer exists")
		}
		return domain.Principal{}, err
	}
	return domain.PrincipalFromAccount(account), nil
}
