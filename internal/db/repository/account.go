package repository

import (
	"context"
	"database/sql"
	"time"

	"microblog/internal/domain"
)

type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

const accountColumns = `id, username, email, password_hash, is_admin, created_at`

func scanAccount(row interface{ Scan(...any) error }) (*domain.Account, error) {
	var a domain.Account
	var isAdmin int64
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &isAdmin, &a.CreatedAt); err != nil {
		return nil, mapDBError(err)
	}
	a.IsAdmin = isAdmin != 0
	return &a, nil
}

func (r *AccountRepo) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.Username, a.Email, a.PasswordHash, boolToInt(a.IsAdmin), now)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	created := *a
	created.ID = id
	created.CreatedAt = now
	return &created, nil
}

// Register inserts an account from public self-registration. The admin flag
// is computed inside the INSERT — the first row in the table becomes admin —
// so two concurrent registrations cannot both win the flag.
func (r *AccountRepo) Register(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (username, email, password_hash, is_admin, created_at)
		 VALUES (?, ?, ?, NOT EXISTS (SELECT 1 FROM accounts), ?)`,
		a.Username, a.Email, a.PasswordHash, now)
	if err != nil {
		return nil, mapDBError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id))
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email))
}

func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username))
}

func (r *AccountRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Account, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, total, rows.Err()
}

func (r *AccountRepo) Update(ctx context.Context, a *domain.Account) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET username = ?, email = ?, password_hash = ?, is_admin = ? WHERE id = ?`,
		a.Username, a.Email, a.PasswordHash, boolToInt(a.IsAdmin), a.ID)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("account %d not found", a.ID)
	}
	return nil
}

// Delete removes the account. Foreign keys cascade the delete to the
// account's posts, comments, and sessions in the same statement.
func (r *AccountRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return mapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("account %d not found", id)
	}
	return nil
}

func (r *AccountRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total)
	return total, err
}
