// Package blog implements the content and account services. Every mutating
// operation resolves its target's ownership fields, asks the authorization
// policy for a decision, and only then touches the store — a denied action
// has zero side effects.
package blog

import (
	"context"

	"microblog/internal/domain"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// AccountService provides account management operations.
type AccountService struct {
	accounts domain.AccountRepository
	posts    domain.PostRepository
	comments domain.CommentRepository
	policy   *security.Policy
	audit    *governance.AuditService
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accounts domain.AccountRepository,
	posts domain.PostRepository,
	comments domain.CommentRepository,
	policy *security.Policy,
	audit *governance.AuditService,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		posts:    posts,
		comments: comments,
		policy:   policy,
		audit:    audit,
	}
}

// Register creates an account through public self-registration. The first
// registered account becomes the admin; everyone after that starts as a
// regular user. A client-supplied admin flag is ignored on this path.
func (s *AccountService) Register(ctx context.Context, req domain.CreateAccountRequest) (*domain.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Register(ctx, &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, account.Username, "REGISTER_ACCOUNT", account.Username)
	return account, nil
}

// Create creates an account on behalf of an admin. Unlike Register, the
// admin flag from the request is honored.
func (s *AccountService) Create(ctx context.Context, principal *domain.Principal, req domain.CreateAccountRequest) (*domain.Account, error) {
	if err := s.policy.Authorize(principal, domain.ActionCreate, domain.Resource{Kind: domain.ResourceAccount}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	account, err := s.accounts.Create(ctx, &domain.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, principal.Username, "CREATE_ACCOUNT", account.Username)
	return account, nil
}

// Get returns an account. Viewing account records requires an authenticated
// principal.
func (s *AccountService) Get(ctx context.Context, principal *domain.Principal, id int64) (*domain.Account, error) {
	if err := s.policy.Authorize(principal, domain.ActionRead, domain.AccountResource(id)); err != nil {
		return nil, err
	}
	return s.accounts.GetByID(ctx, id)
}

// List returns all accounts. Admin only.
func (s *AccountService) List(ctx context.Context, principal *domain.Principal, page domain.PageRequest) ([]domain.Account, int64, error) {
	if err := s.policy.Authorize(principal, domain.ActionList, domain.Resource{Kind: domain.ResourceAccount}); err != nil {
		return nil, 0, err
	}
	return s.accounts.List(ctx, page)
}

// Update modifies an account. A principal may update their own username,
// email, and password; changing any account's admin flag requires admin.
func (s *AccountService) Update(ctx context.Context, principal *domain.Principal, id int64, req domain.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(principal, domain.ActionUpdate, domain.AccountResource(id)); err != nil {
		return nil, err
	}
	if req.IsAdmin != nil && *req.IsAdmin != account.IsAdmin {
		if err := s.policy.AuthorizeSetAdmin(principal); err != nil {
			return nil, err
		}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Username != nil {
		account.Username = *req.Username
	}
	if req.Email != nil {
		account.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		account.PasswordHash = hash
	}
	if req.IsAdmin != nil {
		account.IsAdmin = *req.IsAdmin
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, principal.Username, "UPDATE_ACCOUNT", account.Username)
	return account, nil
}

// Delete removes an account and, through cascade, all of its posts and
// comments. Self-deletion is always denied, even for admins.
func (s *AccountService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(principal, domain.ActionDelete, domain.AccountResource(id)); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, principal.Username, "DELETE_ACCOUNT", account.Username)
	return nil
}

// ProfileStats summarizes an account's activity for the profile page.
type ProfileStats struct {
	PostCount    int64
	CommentCount int64
}

// Profile returns the principal's own account, recent posts, and stats.
func (s *AccountService) Profile(ctx context.Context, principal *domain.Principal) (*domain.Account, []domain.Post, ProfileStats, error) {
	if principal == nil {
		return nil, nil, ProfileStats{}, domain.ErrUnauthenticated("authentication required")
	}
	account, err := s.accounts.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, nil, ProfileStats{}, err
	}
	posts, postCount, err := s.posts.ListByAuthor(ctx, principal.ID, domain.PageRequest{MaxResults: 10})
	if err != nil {
		return nil, nil, ProfileStats{}, err
	}
	commentCount, err := s.comments.CountByAuthor(ctx, principal.ID)
	if err != nil {
		return nil, nil, ProfileStats{}, err
	}
	return account, posts, ProfileStats{PostCount: postCount, CommentCount: commentCount}, nil
}
