package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"coverapi/internal/model"
	"coverapi/internal/repository"
	"coverapi/internal/repository/mocks"
)

func TestKeyString(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	assert.Equal(t, "chat:u1:1700000000123", ChatKey("u1", at).String())
	assert.Equal(t, "generation:cover-letter:u1:1700000000123", GenerationKey("cover-letter", "u1", at).String())
	assert.Equal(t, "profile:u1", ProfileKey("u1").String())
	assert.Equal(t, "revoked:abc", RevokedTokenKey("abc").String())
}

func TestKeyString_EscapesSeparator(t *testing.T) {
	a := GenerationKey("cv", "a:b", time.UnixMilli(1))
	b := GenerationKey("cv:a", "b", time.UnixMilli(1))

	assert.NotEqual(t, a.String(), b.String())
	assert.Equal(t, "profile:a%3Ab", ProfileKey("a:b").String())
	assert.Equal(t, "profile:100%25", ProfileKey("100%").String())
}

func fixedNow() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	key := ProfileKey("u1")

	t.Run("hit", func(t *testing.T) {
		repo := new(mocks.MockCacheRepository)
		s := NewStore(repo)
		s.now = fixedNow
		repo.On("Get", ctx, "profile:u1", fixedNow()).Return(&model.CacheEntry{
			Key: "profile:u1", Value: json.RawMessage(`{"userId":"u1","firstName":"Ada"}`),
		}, nil)

		var p model.Profile
		found, err := s.Get(ctx, key, &p)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Ada", p.FirstName)
		repo.AssertExpectations(t)
	})

	t.Run("miss", func(t *testing.T) {
		repo := new(mocks.MockCacheRepository)
		s := NewStore(repo)
		s.now = fixedNow
		repo.On("Get", ctx, "profile:u1", fixedNow()).Return(nil, repository.ErrNotFound)

		found, err := s.Get(ctx, key, &model.Profile{})
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(mocks.MockCacheRepository)
		s := NewStore(repo)
		s.now = fixedNow
		repo.On("Get", ctx, "profile:u1", fixedNow()).Return(nil, errors.New("conn reset"))

		found, err := s.Get(ctx, key, nil)
		assert.Error(t, err)
		assert.False(t, found)
	})
}

func TestStore_Set(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockCacheRepository)
	s := NewStore(repo)
	s.now = fixedNow

	repo.On("Upsert", ctx, mock.MatchedBy(func(e model.CacheEntry) bool {
		return e.Key == "chat:u1:1" &&
			e.ExpiresAt.Equal(fixedNow().Add(time.Hour)) &&
			string(e.Value) == `{"message":"hi"}`
	})).Return(nil)

	err := s.Set(ctx, ChatKey("u1", time.UnixMilli(1)), map[string]string{"message": "hi"}, time.Hour)
	require.NoError(t, err)
	repo.AssertExpectations(t)

	assert.Error(t, s.Set(ctx, ProfileKey("u1"), "x", 0))
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockCacheRepository)
	repo.On("Delete", ctx, "profile:u1").Return(nil)

	require.NoError(t, NewStore(repo).Delete(ctx, ProfileKey("u1")))
	repo.AssertExpectations(t)
}

func TestPurger(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := NewPurger(new(mocks.MockCacheRepository), "not a schedule", log)
		assert.Error(t, err)
	})

	t.Run("run deletes expired rows", func(t *testing.T) {
		hook.Reset()
		repo := new(mocks.MockCacheRepository)
		p, err := NewPurger(repo, "@every 10m", log)
		require.NoError(t, err)
		p.now = fixedNow
		repo.On("DeleteExpired", mock.Anything, fixedNow()).Return(int64(3), nil)

		p.run()

		repo.AssertExpectations(t)
		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, int64(3), hook.LastEntry().Data["deleted"])
	})

	t.Run("run logs failure", func(t *testing.T) {
		hook.Reset()
		repo := new(mocks.MockCacheRepository)
		p, err := NewPurger(repo, "@every 10m", log)
		require.NoError(t, err)
		repo.On("DeleteExpired", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

		p.run()

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	})

	t.Run("start and stop", func(t *testing.T) {
		p, err := NewPurger(new(mocks.MockCacheRepository), "@every 1h", log)
		require.NoError(t, err)
		p.Start()
		p.Stop()
	})
}
