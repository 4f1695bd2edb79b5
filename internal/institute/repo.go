package institute

import (
	"context"
	"database/sql"
	"errors"
)

// Institute is a static reference row mapping a name to an id.
type Institute struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Repository reads institute reference data from Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetByName returns the institute with the given name, or nil when absent.
func (r *Repository) GetByName(ctx context.Context, name string) (*Institute, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, institute_name FROM institutes WHERE institute_name = $1
	`, name)
	var inst Institute
	if err := row.Scan(&inst.ID, &inst.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inst, nil
}

// List returns all institutes ordered by name.
func (r *Repository) List(ctx context.Context) ([]Institute, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, institute_name FROM institutes ORDER BY institute_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutes []Institute
	for rows.Next() {
		var inst Institute
		if err := rows.Scan(&inst.ID, &inst.Name); err != nil {
			return nil, err
		}
		institutes = append(institutes, inst)
	}
	return institutes, rows.Err()
}
