package mocks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"coverapi/internal/cache"
)

type MockCache struct {
	mock.Mock
}

// Get returns (found, err). When found and a third return value is given, it is JSON-copied into dst.
func (m *MockCache) Get(ctx context.Context, key cache.Key, dst any) (bool, error) {
	args := m.Called(ctx, key.String(), dst)
	if args.Bool(0) && len(args) > 2 && args.Get(2) != nil && dst != nil {
		raw, err := json.Marshal(args.Get(2))
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return false, err
		}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key cache.Key, value any, ttl time.Duration) error {
	args := m.Called(ctx, key.String(), value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key cache.Key) error {
	args := m.Called(ctx, key.String())
	return args.Error(0)
}
