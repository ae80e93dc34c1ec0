package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// CVPostgres is a PostgreSQL implementation of repository.CVRepository.
// CV fields are free-form and kept in a JSONB column.
type CVPostgres struct {
	db *sql.DB
}

func NewCVPostgres(db *sql.DB) *CVPostgres {
	return &CVPostgres{db: db}
}

var _ repository.CVRepository = (*CVPostgres)(nil)

func scanCV(row interface{ Scan(...any) error }) (*model.CVRecord, error) {
	var (
		cv  model.CVRecord
		raw []byte
	)
	if err := row.Scan(&cv.ID, &raw, &cv.CreatedAt, &cv.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &cv.Data); err != nil {
		return nil, fmt.Errorf("decode cv %s: %w", cv.ID, err)
	}
	return &cv, nil
}

func (r *CVPostgres) Create(ctx context.Context, cv *model.CVRecord) (*model.CVRecord, error) {
	data, err := json.Marshal(cv.Data)
	if err != nil {
		return nil, fmt.Errorf("encode cv: %w", err)
	}
	const q = `
		INSERT INTO cvs (id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, data, created_at, updated_at
	`
	out, err := scanCV(r.db.QueryRowContext(ctx, q, cv.ID, data, cv.CreatedAt, cv.UpdatedAt))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *CVPostgres) FindByID(ctx context.Context, id string) (*model.CVRecord, error) {
	const q = `SELECT id, data, created_at, updated_at FROM cvs WHERE id = $1`
	cv, err := scanCV(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, translate(err)
	}
	return cv, nil
}

func (r *CVPostgres) List(ctx context.Context) ([]model.CVRecord, error) {
	const q = `SELECT id, data, created_at, updated_at FROM cvs ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CVRecord, 0)
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *cv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
