// Package service implements the application use cases on top of the record store,
// the blob store, the cache and the AI providers.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"coverapi/internal/apperror"
	"coverapi/internal/auth"
	"coverapi/internal/model"
	"coverapi/internal/repository"
	"coverapi/internal/storage"
)

// resultTTL is how long generation and chat results stay in the cache.
const resultTTL = time.Hour

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(pw, storedHash string) bool
}

// TokenManager issues, verifies and revokes access tokens.
type TokenManager interface {
	Issue(u *model.User) (string, time.Time, error)
	Verify(ctx context.Context, token string) (*auth.Claims, error)
	Revoke(ctx context.Context, token string) error
}

var (
	_ PasswordHasher = (*auth.Passwords)(nil)
	_ TokenManager   = (*auth.Tokens)(nil)
)

// storeBlob writes the blob then its record. When the record insert fails the blob is removed
// best-effort and the persistence error is returned unchanged.
func storeBlob(ctx context.Context, store storage.Storage, files repository.FileRepository, log logrus.FieldLogger,
	r io.Reader, opt storage.PutObjectOptions, rec *model.UploadedFile) (*model.UploadedFile, error) {
	info, err := store.Put(ctx, rec.StoragePath, r, opt)
	if err != nil {
		return nil, apperror.Persistence("upload to storage", err)
	}
	if info.Size > 0 {
		rec.FileSize = info.Size
	}

	stored, err := files.Create(ctx, rec)
	if err != nil {
		if delErr := store.Delete(ctx, rec.StoragePath); delErr != nil {
			log.WithError(delErr).WithField("storage_path", rec.StoragePath).Error("rollback delete failed")
		}
		return nil, apperror.Persistence("db save failed", err)
	}
	return stored, nil
}

// persistenceOrNotFound maps repository.ErrNotFound to a not-found error and anything else to persistence.
func persistenceOrNotFound(err error, notFoundMsg, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return apperror.Persistence(op, err)
}
