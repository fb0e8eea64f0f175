package repository

import (
	"context"
	"database/sql"
	"time"

	"microblog/internal/domain"
)

type CommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

const commentSelect = `
SELECT c.id, c.content, c.created_at, c.post_id, c.author_id, a.username
FROM comments c
JOIN accounts a ON a.id = c.author_id`

func scanComment(row interface{ Scan(...any) error }) (*domain.Comment, error) {
	var c domain.Comment
	if err := row.Scan(&c.ID, &c.Content, &c.CreatedAt, &c.PostID, &c.AuthorID,
		&c.AuthorUsername); err != nil {
		return nil, mapDBError(err)
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (content, created_at, post_id, author_id) VALUES (?, ?, ?, ?)`,
		c.Content, now, c.PostID, c.AuthorID)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return scanComment(r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = ?`, id))
}

func (r *CommentRepo) ListForPost(ctx context.Context, postID int64, page domain.PageRequest) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		commentSelect+` WHERE c.post_id = ? ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`,
		postID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, *c)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments WHERE author_id = ?`, authorID).Scan(&total)
	return total, err
}

func (r *CommentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("comment %d not found", id)
	}
	return nil
}
