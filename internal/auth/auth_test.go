package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cachemocks "coverapi/internal/cache/mocks"
	"coverapi/internal/config"
	"coverapi/internal/model"
)

func TestPasswords(t *testing.T) {
	_, err := NewPasswords(config.AuthConfig{BcryptCost: 4})
	require.Error(t, err)

	p, err := NewPasswords(config.AuthConfig{BcryptCost: 10, Pepper: "pep"})
	require.NoError(t, err)

	hash, err := p.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, p.Verify("s3cret!", hash))
	assert.False(t, p.Verify("wrong", hash))

	unpeppered, err := NewPasswords(config.AuthConfig{BcryptCost: 10})
	require.NoError(t, err)
	assert.False(t, unpeppered.Verify("s3cret!", hash))
}

func newTokens(t *testing.T, c *cachemocks.MockCache, now time.Time) *Tokens {
	t.Helper()
	tk, err := NewTokens(config.AuthConfig{JWTSecret: "test-secret", ExpirationHours: 24}, c)
	require.NoError(t, err)
	tk.now = func() time.Time { return now }
	return tk
}

func TestNewTokens_Validation(t *testing.T) {
	_, err := NewTokens(config.AuthConfig{ExpirationHours: 1}, nil)
	assert.Error(t, err)
	_, err = NewTokens(config.AuthConfig{JWTSecret: "s", ExpirationHours: 0}, nil)
	assert.Error(t, err)
}

func TestTokens_IssueVerify(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := new(cachemocks.MockCache)
	tk := newTokens(t, c, now)

	token, exp, err := tk.Issue(&model.User{ID: "u1", Email: "a@b.c", Role: "user"})
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(24*time.Hour), exp, time.Second)

	c.On("Get", ctx, mock.MatchedBy(func(k string) bool { return len(k) > len("revoked:") }), nil).Return(false, nil)

	claims, err := tk.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
	assert.Equal(t, "a@b.c", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokens_VerifyRejects(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("empty", func(t *testing.T) {
		_, err := newTokens(t, new(cachemocks.MockCache), now).Verify(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := newTokens(t, new(cachemocks.MockCache), now).Verify(ctx, "not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokens(config.AuthConfig{JWTSecret: "other", ExpirationHours: 1}, nil)
		require.NoError(t, err)
		token, _, err := other.Issue(&model.User{ID: "u1"})
		require.NoError(t, err)

		_, err = newTokens(t, new(cachemocks.MockCache), now).Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		c := new(cachemocks.MockCache)
		token, _, err := newTokens(t, c, now.Add(-48*time.Hour)).Issue(&model.User{ID: "u1"})
		require.NoError(t, err)

		_, err = newTokens(t, c, now).Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject: "u1", ID: "j", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = newTokens(t, new(cachemocks.MockCache), now).Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revoked", func(t *testing.T) {
		c := new(cachemocks.MockCache)
		tk := newTokens(t, c, now)
		token, _, err := tk.Issue(&model.User{ID: "u1"})
		require.NoError(t, err)
		c.On("Get", ctx, mock.Anything, nil).Return(true, nil)

		_, err = tk.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrRevokedToken)
	})

	t.Run("cache failure", func(t *testing.T) {
		c := new(cachemocks.MockCache)
		tk := newTokens(t, c, now)
		token, _, err := tk.Issue(&model.User{ID: "u1"})
		require.NoError(t, err)
		c.On("Get", ctx, mock.Anything, nil).Return(false, errors.New("db down"))

		_, err = tk.Verify(ctx, token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})
}

func TestTokens_Revoke(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := new(cachemocks.MockCache)
	tk := newTokens(t, c, now)

	token, _, err := tk.Issue(&model.User{ID: "u1"})
	require.NoError(t, err)

	c.On("Set", ctx, mock.AnythingOfType("string"), "u1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 23*time.Hour && ttl <= 24*time.Hour
	})).Return(nil)

	require.NoError(t, tk.Revoke(ctx, token))
	c.AssertExpectations(t)

	assert.ErrorIs(t, tk.Revoke(ctx, "bogus"), ErrInvalidToken)
}
