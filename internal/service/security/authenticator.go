package security

import (
	"context"
	"errors"

	"microblog/internal/domain"
)

// Authenticator performs synchronous credential checks at login.
type Authenticator struct {
	accounts domain.AccountRepository
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(accounts domain.AccountRepository) *Authenticator {
	return &Authenticator{accounts: accounts}
}

// Authenticate verifies an email/password pair and returns the principal.
// A miss on either field returns InvalidCredentialsError; the error never
// says which one was wrong.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (domain.Principal, error) {
	account, err := a.accounts.GetByEmail(ctx, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Principal{}, domain.ErrInvalidCredentials()
		}
		return domain.Principal{}, err
	}
	if !CheckPassword(password, account.PasswordHash) {
		return domain.Principal{}, domain.ErrInvalidCredentials()
	}
	return domain.PrincipalFromAccount(account), nil
}
