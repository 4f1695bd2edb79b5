package user

import (
	"context"
	"database/sql"
	"errors"
)

const userColumns = `id, email, name, role, password_hash, created_at`

// Single role-exclusion predicate shared by the listing and the count.
const notRoleClause = `role <> $1`

// Repository persists directory accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns all accounts ordered by id.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ListByRole returns accounts with the given role, ordered by id.
func (r *Repository) ListByRole(ctx context.Context, role Role) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE role = $1
		ORDER BY id
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// ListNotRole returns accounts whose role differs from the given one.
func (r *Repository) ListNotRole(ctx context.Context, role Role) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+notRoleClause+`
		ORDER BY id
	`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// CountNotRole counts accounts whose role differs from the given one.
func (r *Repository) CountNotRole(ctx context.Context, role Role) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE `+notRoleClause+`
	`, role).Scan(&n)
	return n, err
}

// GetByEmail returns the account with the given email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Update applies the non-nil fields of upd to the account with the given id
// and returns the updated row, or nil when the id does not exist.
func (r *Repository) Update(ctx context.Context, id int64, upd Update) (*User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET email = COALESCE($2, email),
		    name = COALESCE($3, name),
		    role = COALESCE($4, role)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, id, upd.Email, upd.Name, upd.Role)
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes an account. Deleting a nonexistent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func scanUsers(rows *sql.Rows) ([]User, error) {
	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
