package security

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/domain"
)

func newTestResolver(t *testing.T) (*Resolver, *TokenService, *SessionService, *repository.AccountRepo) {
	t.Helper()

	writeDB, _ := db.OpenTestSQLite(t)
	accounts := repository.NewAccountRepo(writeDB)
	sessions := NewSessionService(repository.NewSessionRepo(writeDB), time.Hour)
	tokens := newTestTokenService(t)

	return NewResolver(tokens, sessions, accounts), tokens, sessions, accounts
}

func createAccount(t *testing.T, accounts *repository.AccountRepo, username string, isAdmin bool) *domain.Account {
	t.Helper()
	account, err := accounts.Create(context.Background(), &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		IsAdmin:      isAdmin,
	})
	require.NoError(t, err)
	return account
}

func TestResolver_Bearer(t *testing.T) {
	resolver, tokens, _, accounts := newTestResolver(t)
	ctx := context.Background()

	account := createAccount(t, accounts, "alice", true)
	token, err := tokens.Issue(account.ID)
	require.NoError(t, err)

	principal, err := resolver.ResolveBearer(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, principal.ID)
	assert.Equal(t, "alice", principal.Username)
	assert.True(t, principal.IsAdmin)
}

func TestResolver_Bearer_InvalidToken(t *testing.T) {
	resolver, _, _, _ := newTestResolver(t)

	_, err := resolver.ResolveBearer(context.Background(), "garbage")
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestResolver_Bearer_ExpiredToken(t *testing.T) {
	resolver, tokens, _, accounts := newTestResolver(t)
	ctx := context.Background()

	account := createAccount(t, accounts, "alice", false)
	token, err := tokens.Issue(account.ID)
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = resolver.ResolveBearer(ctx, token)
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
	assert.Contains(t, err.Error(), "session expired")
}

func TestResolver_Bearer_DeletedAccount(t *testing.T) {
	resolver, tokens, _, accounts := newTestResolver(t)
	ctx := context.Background()

	account := createAccount(t, accounts, "gone", false)
	token, err := tokens.Issue(account.ID)
	require.NoError(t, err)
	require.NoError(t, accounts.Delete(ctx, account.ID))

	_, err = resolver.ResolveBearer(ctx, token)
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
}

// A token issued before an admin-flag change must reflect the store's current
// flag when resolved, in both directions.
func TestResolver_Bearer_AdminFlagIsCurrent(t *testing.T) {
	resolver, tokens, _, accounts := newTestResolver(t)
	ctx := context.Background()

	account := createAccount(t, accounts, "bob", false)
	token, err := tokens.Issue(account.ID)
	require.NoError(t, err)

	principal, err := resolver.ResolveBearer(ctx, token)
	require.NoError(t, err)
	require.False(t, principal.IsAdmin)

	account.IsAdmin = true
	require.NoError(t, accounts.Update(ctx, account))

	principal, err = resolver.ResolveBearer(ctx, token)
	require.NoError(t, err)
	assert.True(t, principal.IsAdmin)

	account.IsAdmin = false
	require.NoError(t, accounts.Update(ctx, account))

	principal, err = resolver.ResolveBearer(ctx, token)
	require.NoError(t, err)
	assert.False(t, principal.IsAdmin)
}

func TestResolver_Session(t *testing.T) {
	resolver, _, sessions, accounts := newTestResolver(t)
	ctx := context.Background()

	account := createAccount(t, accounts, "carol", false)
	sess, err := sessions.Create(ctx, account.ID)
	require.NoError(t, err)

	principal, err := resolver.ResolveSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, principal.ID)

	require.NoError(t, sessions.Delete(ctx, sess.ID))

	_, err = resolver.ResolveSession(ctx, sess.ID)
	var unauth *domain.UnauthenticatedError
	require.ErrorAs(t, err, &unauth)
}
