package postgres

import (
	"context"
	"database/sql"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// CoverLetterPostgres is a PostgreSQL implementation of repository.CoverLetterRepository.
type CoverLetterPostgres struct {
	db *sql.DB
}

func NewCoverLetterPostgres(db *sql.DB) *CoverLetterPostgres {
	return &CoverLetterPostgres{db: db}
}

var _ repository.CoverLetterRepository = (*CoverLetterPostgres)(nil)

const coverLetterColumns = `id, user_id, job_title, company, content, created_at`

func scanCoverLetter(row interface{ Scan(...any) error }) (*model.CoverLetter, error) {
	var l model.CoverLetter
	if err := row.Scan(&l.ID, &l.UserID, &l.JobTitle, &l.Company, &l.Content, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CoverLetterPostgres) Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error) {
	const q = `
		INSERT INTO cover_letters (id, user_id, job_title, company, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + coverLetterColumns
	out, err := scanCoverLetter(r.db.QueryRowContext(ctx, q,
		l.ID, l.UserID, l.JobTitle, l.Company, l.Content, l.CreatedAt,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *CoverLetterPostgres) List(ctx context.Context) ([]model.CoverLetter, error) {
	const q = `
		SELECT ` + coverLetterColumns + `
		FROM cover_letters
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CoverLetter, 0)
	for rows.Next() {
		l, err := scanCoverLetter(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a letter and reports repository.ErrNotFound when nothing matched.
func (r *CoverLetterPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM cover_letters WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return translate(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
