package postgres

import (
	"context"
	"database/sql"
	"time"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// CachePostgres stores cache entries in the cache_entries table.
type CachePostgres struct {
	db *sql.DB
}

func NewCachePostgres(db *sql.DB) *CachePostgres {
	return &CachePostgres{db: db}
}

var _ repository.CacheRepository = (*CachePostgres)(nil)

func (r *CachePostgres) Get(ctx context.Context, key string, now time.Time) (*model.CacheEntry, error) {
	const q = `SELECT key, value, expires_at FROM cache_entries WHERE key = $1 AND expires_at > $2`
	var (
		e   model.CacheEntry
		raw []byte
	)
	if err := r.db.QueryRowContext(ctx, q, key, now).Scan(&e.Key, &raw, &e.ExpiresAt); err != nil {
		return nil, translate(err)
	}
	e.Value = raw
	return &e, nil
}

func (r *CachePostgres) Upsert(ctx context.Context, e model.CacheEntry) error {
	const q = `
		INSERT INTO cache_entries (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at
	`
	_, err := r.db.ExecContext(ctx, q, e.Key, []byte(e.Value), e.ExpiresAt)
	return err
}

func (r *CachePostgres) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM cache_entries WHERE key = $1`
	_, err := r.db.ExecContext(ctx, q, key)
	return err
}

func (r *CachePostgres) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const q = `DELETE FROM cache_entries WHERE expires_at <= $1`
	res, err := r.db.ExecContext(ctx, q, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
