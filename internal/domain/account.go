package domain

import (
	"net/mail"
	"time"
)

// Account represents a registered user of the blog platform.
// PasswordHash is never serialized to any surface.
type Account struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal is the authenticated identity making the current request. It is
// reconstructed from a verified credential on every request and discarded at
// request end, so a privilege change takes effect on the next request.
type Principal struct {
	ID       int64
	Username string
	Email    string
	IsAdmin  bool
}

// PrincipalFromAccount derives the request principal from a stored account.
func PrincipalFromAccount(a *Account) Principal {
	return Principal{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		IsAdmin:  a.IsAdmin,
	}
}

// CreateAccountRequest holds parameters for registering or creating an account.
type CreateAccountRequest struct {
	Username string
	Email    string
	Password string
	IsAdmin  bool
}

// Validate checks that the request is well-formed.
func (r *CreateAccountRequest) Validate() error {
	if len(r.Username) < 4 || len(r.Username) > 20 {
		return ErrValidation("username must be between 4 and 20 characters")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrValidation("email address is invalid")
	}
	if len(r.Password) < 6 {
		return ErrValidation("password must be at least 6 characters")
	}
	return nil
}

// UpdateAccountRequest holds parameters for updating an account. Nil fields
// are left unchanged.
type UpdateAccountRequest struct {
	Username *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// Validate checks that the provided fields are well-formed.
func (r *UpdateAccountRequest) Validate() error {
	if r.Username != nil && (len(*r.Username) < 4 || len(*r.Username) > 20) {
		return ErrValidation("username must be between 4 and 20 characters")
	}
	if r.Email != nil {
		if _, err := mail.ParseAddress(*r.Email); err != nil {
			return ErrValidation("email address is invalid")
		}
	}
	if r.Password != nil && len(*r.Password) < 6 {
		return ErrValidation("password must be at least 6 characters")
	}
	return nil
}
