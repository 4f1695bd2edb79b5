package leave

import (
	"context"
	"database/sql"
	"errors"
)

const requestColumns = `id, user_id, reason, status, created_at`

// Repository persists leave requests in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// List returns every leave request, newest first.
func (r *Repository) List(ctx context.Context) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+requestColumns+`
		FROM leave_requests
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.UserID, &req.Reason, &req.Status, &req.CreatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Get returns a request by id, or nil when absent.
func (r *Repository) Get(ctx context.Context, id int64) (*Request, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM leave_requests
		WHERE id = $1
	`, id)
	var req Request
	if err := row.Scan(&req.ID, &req.UserID, &req.Reason, &req.Status, &req.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// Insert creates a new pending request.
func (r *Repository) Insert(ctx context.Context, userID int64, reason string) (Request, error) {
	req := Request{UserID: userID, Reason: reason, Status: StatusPending}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO leave_requests (user_id, reason)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, userID, reason)
	if err := row.Scan(&req.ID, &req.CreatedAt); err != nil {
		return Request{}, err
	}
	return req, nil
}

// UpdateStatus sets a request's status. An unknown id yields ErrNotFound.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE leave_requests SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
