package domain

import (
	"strings"
	"time"
)

// Comment references exactly one post and one account.
type Comment struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	PostID    int64
	AuthorID  int64

	// AuthorUsername is a denormalized join field populated by list queries.
	AuthorUsername string
}

// CreateCommentRequest holds parameters for commenting on a post. The author
// is always the acting principal.
type CreateCommentRequest struct {
	PostID  int64
	Content string
}

// Validate checks that the request is well-formed.
func (r *CreateCommentRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrValidation("comment must not be empty")
	}
	if len(r.Content) > 500 {
		return ErrValidation("comment must be at most 500 characters")
	}
	return nil
}
