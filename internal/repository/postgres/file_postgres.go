package postgres

import (
	"context"
	"database/sql"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// FilePostgres is a PostgreSQL implementation of repository.FileRepository.
type FilePostgres struct {
	db *sql.DB
}

// NewFilePostgres creates a new FilePostgres repository.
func NewFilePostgres(db *sql.DB) *FilePostgres {
	return &FilePostgres{db: db}
}

var _ repository.FileRepository = (*FilePostgres)(nil)

const fileColumns = `id, user_id, file_type, file_name, file_url, file_size, mime_type, storage_path, created_at`

func scanFile(row interface{ Scan(...any) error }) (*model.UploadedFile, error) {
	var f model.UploadedFile
	if err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.FileType,
		&f.FileName,
		&f.FileURL,
		&f.FileSize,
		&f.MimeType,
		&f.StoragePath,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a file row and returns the stored record.
func (r *FilePostgres) Create(ctx context.Context, f *model.UploadedFile) (*model.UploadedFile, error) {
	const q = `
		INSERT INTO files (id, user_id, file_type, file_name, file_url, file_size, mime_type, storage_path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + fileColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.UserID,
		f.FileType,
		f.FileName,
		f.FileURL,
		f.FileSize,
		f.MimeType,
		f.StoragePath,
		f.CreatedAt,
	)
	out, err := scanFile(row)
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// FindByIDAndOwner fetches a file only if it belongs to userID.
func (r *FilePostgres) FindByIDAndOwner(ctx context.Context, id, userID string) (*model.UploadedFile, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND user_id = $2
	`
	f, err := scanFile(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		return nil, translate(err)
	}
	return f, nil
}

// ListByOwner returns a user's files, newest first.
func (r *FilePostgres) ListByOwner(ctx context.Context, userID string) ([]model.UploadedFile, error) {
	const q = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.UploadedFile, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a file row by ID. It does not return an error if the row does not exist.
func (r *FilePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM files WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return translate(err)
}
