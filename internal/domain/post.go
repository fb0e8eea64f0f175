package domain

import (
	"strings"
	"time"
)

// Post is a blog post owned by exactly one account.
type Post struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
	AuthorID  int64

	// AuthorUsername and CommentCount are denormalized join fields populated
	// by list/get queries; they are not stored on the posts table.
	AuthorUsername string
	CommentCount   int64
}

// CreatePostRequest holds parameters for creating a post. The author is always
// the acting principal; a client-supplied author id is never trusted.
type CreatePostRequest struct {
	Title   string
	Content string
}

// Validate checks that the request is well-formed.
func (r *CreatePostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrValidation("title is required")
	}
	if len(r.Title) > 100 {
		return ErrValidation("title must be at most 100 characters")
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrValidation("content is required")
	}
	return nil
}

// UpdatePostRequest holds parameters for updating a post. Nil fields are left
// unchanged.
type UpdatePostRequest struct {
	Title   *string
	Content *string
}

// Validate checks that the provided fields are well-formed.
func (r *UpdatePostRequest) Validate() error {
	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			return ErrValidation("title is required")
		}
		if len(*r.Title) > 100 {
			return ErrValidation("title must be at most 100 characters")
		}
	}
	if r.Content != nil && strings.TrimSpace(*r.Content) == "" {
		return ErrValidation("content is required")
	}
	return nil
}
