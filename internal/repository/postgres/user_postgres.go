package postgres

import (
	"context"
	"database/sql"
	"time"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, role, avatar_url, created_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u         model.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.AvatarURL,
		&u.CreatedAt,
		&lastLogin,
	); err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return &u, nil
}

// Create inserts a user row. The unique email index turns duplicates into repository.ErrDuplicate.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, first_name, last_name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.Role,
		u.CreatedAt,
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

// UpdateAvatar points the user's profile picture at a stored file URL.
func (r *UserPostgres) UpdateAvatar(ctx context.Context, id, avatarURL string) error {
	const q = `UPDATE users SET avatar_url = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, avatarURL)
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

func (r *UserPostgres) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE users SET last_login_at = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}

func (r *UserPostgres) CreateProfile(ctx context.Context, userID, displayName string) error {
	const q = `
		INSERT INTO profiles (user_id, display_name)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, q, userID, displayName)
	return err
}

// FindProfile joins the user with its optional profile row.
func (r *UserPostgres) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	const q = `
		SELECT u.id, u.email, u.first_name, u.last_name, COALESCE(p.display_name, ''), u.role, u.avatar_url, u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`
	var p model.Profile
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&p.UserID,
		&p.Email,
		&p.FirstName,
		&p.LastName,
		&p.DisplayName,
		&p.Role,
		&p.AvatarURL,
		&p.CreatedAt,
	); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}
