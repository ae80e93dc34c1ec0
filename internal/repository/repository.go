// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres) and contain no business logic.
package repository

import (
	"context"
	"errors"
	"time"

	"coverapi/internal/model"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository persists accounts and their profile rows.
type UserRepository interface {
	// Create inserts a user and returns it with store-assigned fields.
	// Returns ErrDuplicate when the email is already registered.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// FindByEmail matches the email case-insensitively.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateAvatar(ctx context.Context, id, avatarURL string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	CreateProfile(ctx context.Context, userID, displayName string) error
	FindProfile(ctx context.Context, userID string) (*model.Profile, error)
}

// CoverLetterRepository persists generated cover letters.
type CoverLetterRepository interface {
	Create(ctx context.Context, l *model.CoverLetter) (*model.CoverLetter, error)
	// List returns every letter ordered by created_at descending.
	List(ctx context.Context) ([]model.CoverLetter, error)
	// Delete removes a letter by ID. Returns ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id string) error
}

// CVRepository persists CV records.
type CVRepository interface {
	Create(ctx context.Context, cv *model.CVRecord) (*model.CVRecord, error)
	FindByID(ctx context.Context, id string) (*model.CVRecord, error)
	// List returns every record ordered by created_at descending.
	List(ctx context.Context) ([]model.CVRecord, error)
}

// FileRepository persists uploaded file metadata.
type FileRepository interface {
	Create(ctx context.Context, f *model.UploadedFile) (*model.UploadedFile, error)
	// FindByIDAndOwner returns ErrNotFound when the file is absent or owned by someone else.
	FindByIDAndOwner(ctx context.Context, id, userID string) (*model.UploadedFile, error)
	ListByOwner(ctx context.Context, userID string) ([]model.UploadedFile, error)
	// Delete removes a file row. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}

// CacheRepository stores cache entries with absolute expiry.
type CacheRepository interface {
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string, now time.Time) (*model.CacheEntry, error)
	Upsert(ctx context.Context, e model.CacheEntry) error
	Delete(ctx context.Context, key string) error
	// DeleteExpired removes entries that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StatsRepository answers the dashboard counters.
type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountActiveUsers(ctx context.Context, since time.Time) (int, error)
	CountCoverLettersSince(ctx context.Context, since time.Time) (int, error)
	CountUploadsSince(ctx context.Context, since time.Time) (int, error)
}
