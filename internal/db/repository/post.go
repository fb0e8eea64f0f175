package repository

import (
	"context"
	"database/sql"
	"time"

	"microblog/internal/domain"
)

type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

// postSelect joins the author username and comment count in one query so list
// pages never issue per-row lookups.
const postSelect = `
SELECT p.id, p.title, p.content, p.created_at, p.author_id, a.username,
       (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
FROM posts p
JOIN accounts a ON a.id = p.author_id`

func scanPost(row interface{ Scan(...any) error }) (*domain.Post, error) {
	var p domain.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.AuthorID,
		&p.AuthorUsername, &p.CommentCount); err != nil {
		return nil, mapDBError(err)
	}
	return &p, nil
}

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, created_at, author_id) VALUES (?, ?, ?, ?)`,
		p.Title, p.Content, now, p.AuthorID)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = ?`, id))
}

func (r *PostRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	return r.listQuery(ctx, total, postSelect+` ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID int64, page domain.PageRequest) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE author_id = ?`, authorID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return r.listQuery(ctx, total,
		postSelect+` WHERE p.author_id = ? ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		authorID, page.Limit(), page.Offset())
}

func (r *PostRepo) listQuery(ctx context.Context, total int64, query string, args ...any) ([]domain.Post, int64, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, total, rows.Err()
}

func (r *PostRepo) Update(ctx context.Context, p *domain.Post) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ? WHERE id = ?`,
		p.Title, p.Content, p.ID)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("post %d not found", p.ID)
	}
	return nil
}

// Delete removes the post; comments cascade via foreign key.
func (r *PostRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("post %d not found", id)
	}
	return nil
}
