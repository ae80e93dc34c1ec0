package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"coverapi/internal/cache"
	"coverapi/internal/config"
	"coverapi/internal/model"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrRevokedToken = errors.New("token revoked")
)

// Claims are the JWT claims issued to a signed-in user. Subject holds the user ID.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the token.
func (c *Claims) UserID() string { return c.Subject }

// Tokens issues, verifies and revokes HS256 access tokens.
// Revoked token ids are kept in the cache until the token would have expired anyway.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
	now    func() time.Time
}

func NewTokens(cfg config.AuthConfig, c cache.Cache) (*Tokens, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if cfg.ExpirationHours < 1 {
		return nil, fmt.Errorf("jwt expiration must be at least 1 hour, got %d", cfg.ExpirationHours)
	}
	return &Tokens{
		secret: []byte(cfg.JWTSecret),
		ttl:    time.Duration(cfg.ExpirationHours) * time.Hour,
		cache:  c,
		now:    time.Now,
	}, nil
}

// TTL is the lifetime of newly issued tokens.
func (t *Tokens) TTL() time.Duration { return t.ttl }

// Issue signs a token for u and returns it with its expiry.
func (t *Tokens) Issue(u *model.User) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	claims := &Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, expiry and revocation.
func (t *Tokens) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := t.parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := t.cache.Get(ctx, cache.RevokedTokenKey(claims.ID), nil)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke marks a valid token as unusable for the rest of its lifetime.
func (t *Tokens) Revoke(ctx context.Context, token string) error {
	claims, err := t.parse(token)
	if err != nil {
		return err
	}
	remaining := claims.ExpiresAt.Time.Sub(t.now())
	if remaining <= 0 {
		return nil
	}
	return t.cache.Set(ctx, cache.RevokedTokenKey(claims.ID), claims.Subject, remaining)
}

func (t *Tokens) parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
