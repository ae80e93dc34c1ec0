package postgres

import (
	"context"
	"database/sql"
	"time"

	"coverapi/internal/repository"
)

// StatsPostgres answers dashboard counters with COUNT queries.
type StatsPostgres struct {
	db *sql.DB
}

func NewStatsPostgres(db *sql.DB) *StatsPostgres {
	return &StatsPostgres{db: db}
}

var _ repository.StatsRepository = (*StatsPostgres)(nil)

func (r *StatsPostgres) count(ctx context.Context, q string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *StatsPostgres) CountUsers(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users`)
}

func (r *StatsPostgres) CountActiveUsers(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM users WHERE last_login_at >= $1`, since)
}

func (r *StatsPostgres) CountCoverLettersSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cover_letters WHERE created_at >= $1`, since)
}

func (r *StatsPostgres) CountUploadsSince(ctx context.Context, since time.Time) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM files WHERE created_at >= $1`, since)
}
