package blog

import (
	"context"
	"strconv"

	"microblog/internal/domain"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// PostService provides post CRUD with ownership checks.
type PostService struct {
	posts  domain.PostRepository
	policy *security.Policy
	audit  *governance.AuditService
}

// NewPostService creates a new PostService.
func NewPostService(posts domain.PostRepository, policy *security.Policy, audit *governance.AuditService) *PostService {
	return &PostService{posts: posts, policy: policy, audit: audit}
}

// List returns posts, newest first. Public.
func (s *PostService) List(ctx context.Context, page domain.PageRequest) ([]domain.Post, int64, error) {
	return s.posts.List(ctx, page)
}

// Get returns a single post. Public.
func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Create creates a post authored by the principal. The author id always
// comes from the principal, never from the client.
func (s *PostService) Create(ctx context.Context, principal *domain.Principal, req domain.CreatePostRequest) (*domain.Post, error) {
	if err := s.policy.Authorize(principal, domain.ActionCreate, domain.Resource{Kind: domain.ResourcePost}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.posts.Create(ctx, &domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: principal.ID,
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, principal.Username, "CREATE_POST", strconv.FormatInt(post.ID, 10))
	return post, nil
}

// Update modifies a post. Owner or admin.
func (s *PostService) Update(ctx context.Context, principal *domain.Principal, id int64, req domain.UpdatePostRequest) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Authorize(principal, domain.ActionUpdate, domain.PostResource(post.ID, post.AuthorID)); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, principal.Username, "UPDATE_POST", strconv.FormatInt(post.ID, 10))
	return post, nil
}

// Delete removes a post and, through cascade, its comments. Owner or admin.
func (s *PostService) Delete(ctx context.Context, principal *domain.Principal, id int64) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.Authorize(principal, domain.ActionDelete, domain.PostResource(post.ID, post.AuthorID)); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, principal.Username, "DELETE_POST", strconv.FormatInt(id, 10))
	return nil
}
