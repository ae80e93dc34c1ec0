package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/model"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string, now time.Time) (*model.CacheEntry, error) {
	args := m.Called(ctx, key, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CacheEntry), args.Error(1)
}

func (m *MockCacheRepository) Upsert(ctx context.Context, e model.CacheEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}
