package blog

import (
	"context"
	"strconv"

	"microblog/internal/domain"
	"microblog/internal/service/governance"
	"microblog/internal/service/security"
)

// CommentService provides comment operations with ownership checks.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
	policy   *security.Policy
	audit    *governance.AuditService
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments domain.CommentRepository,
	posts domain.PostRepository,
	policy *security.Policy,
	audit *governance.AuditService,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, policy: policy, audit: audit}
}

// ListForPost returns a post's comments, newest first. Public. Returns
// NotFound when the post itself does not exist.
func (s *CommentService) ListForPost(ctx context.Context, postID int64, page domain.PageRequest) ([]domain.Comment, int64, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}
	return s.comments.ListForPost(ctx, postID, page)
}

// Create adds a comment to a post, authored by the principal.
func (s *CommentService) Create(ctx context.Context, principal *domain.Principal, req domain.CreateCommentRequest) (*domain.Comment, error) {
	if err := s.policy.Authorize(principal, domain.ActionCreate, domain.Resource{Kind: domain.ResourceComment}); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.posts.GetByID(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		Content:  req.Content,
		PostID:   req.PostID,
		AuthorID: principal.ID,
	})
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, principal.Username, "CREATE_COMMENT", strconv.FormatInt(comment.ID, 10))
	return comment, nil
}

// Delete removes a comment. Owner or admin.
func (s *CommentService) Delete(ctx context.Context, principal *domain.Principal, id int64) (postID int64, err error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.policy.Authorize(principal, domain.ActionDelete, domain.CommentResource(comment.ID, comment.AuthorID)); err != nil {
		return 0, err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return 0, err
	}
	s.audit.Record(ctx, principal.Username, "DELETE_COMMENT", strconv.FormatInt(id, 10))
	return comment.PostID, nil
}
