package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"coverapi/internal/repository"
)

const (
	uniqueViolation = "23505"
	// Raised when a malformed id is compared against a uuid column.
	invalidTextRepresentation = "22P02"
)

// translate maps driver errors onto repository sentinels.
// An id that cannot be a uuid cannot match any row, so it reads as not found.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return repository.ErrDuplicate
		case invalidTextRepresentation:
			return repository.ErrNotFound
		}
	}
	return err
}
