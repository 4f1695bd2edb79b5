package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

const recordColumns = `id, user_id, institute_id, login_option, login_time, login_date, created_at`

// Repository persists the attendance ledger in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new check-in verbatim. There is no dedup at this layer;
// duplicate prevention is the caller's pre-check.
func (r *Repository) Insert(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.LoginTime.IsZero() {
		rec.LoginTime = time.Now().UTC()
	}
	start, _ := DayWindow(rec.LoginTime)
	rec.LoginDate = start

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (id, user_id, institute_id, login_option, login_time, login_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rec.ID, rec.UserID, rec.InstituteID, rec.LoginOption, rec.LoginTime, rec.LoginDate)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Exists reports whether the user already has a record with the given option
// inside [start, end).
func (r *Repository) Exists(ctx context.Context, userID int64, option string, start, end time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE user_id = $1 AND login_option = $2 AND login_time >= $3 AND login_time < $4
		)
	`, userID, option, start, end).Scan(&exists)
	return exists, err
}

// ListAll returns the full ledger, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		ORDER BY login_time DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByUser returns a user's records, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY login_time DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListBetween returns records with login_time inside [start, end).
func (r *Repository) ListBetween(ctx context.Context, start, end time.Time) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE login_time >= $1 AND login_time < $2
		ORDER BY login_time DESC
	`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// LatestForUserBetween returns the user's most recent record inside
// [start, end), or nil when there is none.
func (r *Repository) LatestForUserBetween(ctx context.Context, userID int64, start, end time.Time) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM attendance_records
		WHERE user_id = $1 AND login_time >= $2 AND login_time < $3
		ORDER BY login_time DESC
		LIMIT 1
	`, userID, start, end)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.UserID, &rec.InstituteID, &rec.LoginOption, &rec.LoginTime, &rec.LoginDate, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// CountDistinctPresent counts distinct users with a record for the given
// option inside [start, end).
func (r *Repository) CountDistinctPresent(ctx context.Context, option string, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT user_id)
		FROM attendance_records
		WHERE login_option = $1 AND login_time >= $2 AND login_time < $3
	`, option, start, end).Scan(&n)
	return n, err
}

// PresentUserIDs returns the distinct ids of users with a record for the
// given option inside [start, end).
func (r *Repository) PresentUserIDs(ctx context.Context, option string, start, end time.Time) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT user_id
		FROM attendance_records
		WHERE login_option = $1 AND login_time >= $2 AND login_time < $3
	`, option, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.InstituteID, &rec.LoginOption, &rec.LoginTime, &rec.LoginDate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
