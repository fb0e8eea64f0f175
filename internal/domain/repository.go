package domain

import "context"

// AccountRepository persists accounts. Create, Register, and Update surface
// uniqueness violations on username/email as ConflictError; lookups that miss
// return NotFoundError. Register ignores the given admin flag and grants it
// to the first account only, atomically with the insert.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) (*Account, error)
	Register(ctx context.Context, a *Account) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	List(ctx context.Context, page PageRequest) ([]Account, int64, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

// PostRepository persists posts. List and Get populate the author username and
// comment count join fields.
type PostRepository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id int64) (*Post, error)
	List(ctx context.Context, page PageRequest) ([]Post, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, page PageRequest) ([]Post, int64, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id int64) error
}

// CommentRepository persists comments.
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) (*Comment, error)
	GetByID(ctx context.Context, id int64) (*Comment, error)
	ListForPost(ctx context.Context, postID int64, page PageRequest) ([]Comment, int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// SessionRepository persists server-side web sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// AuditRepository appends and lists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, page PageRequest) ([]AuditEntry, int64, error)
}
