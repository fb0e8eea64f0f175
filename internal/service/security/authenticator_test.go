package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/db"
	"microblog/internal/db/repository"
	"microblog/internal/domain"
)

func TestAuthenticator(t *testing.T) {
	writeDB, _ := db.OpenTestSQLite(t)
	accounts := repository.NewAccountRepo(writeDB)
	auth := NewAuthenticator(accounts)
	ctx := context.Background()

	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	_, err = accounts.Create(ctx, &domain.Account{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
		IsAdmin:      true,
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		principal, err := auth.Authenticate(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "alice", principal.Username)
		assert.True(t, principal.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "alice@example.com", "wrong")
		var invalid *domain.InvalidCredentialsError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Authenticate(ctx, "nobody@example.com", "correct-horse")
		var invalid *domain.InvalidCredentialsError
		require.ErrorAs(t, err, &invalid)
	})

	// The two failure modes must be indistinguishable to the caller.
	t.Run("uniform error message", func(t *testing.T) {
		_, errWrongPass := auth.Authenticate(ctx, "alice@example.com", "wrong")
		_, errUnknown := auth.Authenticate(ctx, "nobody@example.com", "wrong")
		assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
	})
}
