// Package cache provides a typed key-value cache with per-entry expiry on top of the record store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coverapi/internal/model"
	"coverapi/internal/repository"
)

// Cache stores JSON-serializable values under typed keys.
type Cache interface {
	// Get decodes the value under key into dst. found is false for missing or expired keys.
	Get(ctx context.Context, key Key, dst any) (found bool, err error)
	Set(ctx context.Context, key Key, value any, ttl time.Duration) error
	Delete(ctx context.Context, key Key) error
}

// Store is the Cache backed by a CacheRepository.
type Store struct {
	repo repository.CacheRepository
	now  func() time.Time
}

var _ Cache = (*Store)(nil)

func NewStore(repo repository.CacheRepository) *Store {
	return &Store{repo: repo, now: time.Now}
}

func (s *Store) Get(ctx context.Context, key Key, dst any) (bool, error) {
	e, err := s.repo.Get(ctx, key.String(), s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key.Namespace, err)
	}
	if dst == nil {
		return true, nil
	}
	if err := json.Unmarshal(e.Value, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key.Namespace, err)
	}
	return true, nil
}

func (s *Store) Set(ctx context.Context, key Key, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("cache set %s: ttl must be positive", key.Namespace)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key.Namespace, err)
	}
	entry := model.CacheEntry{Key: key.String(), Value: raw, ExpiresAt: s.now().Add(ttl)}
	if err := s.repo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("cache set %s: %w", key.Namespace, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key Key) error {
	if err := s.repo.Delete(ctx, key.String()); err != nil {
		return fmt.Errorf("cache delete %s: %w", key.Namespace, err)
	}
	return nil
}
