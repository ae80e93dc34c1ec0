// Package auth provides password hashing and bearer token handling.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"coverapi/internal/config"
)

// Passwords hashes and verifies passwords with bcrypt and an optional pepper.
type Passwords struct {
	cost   int
	pepper string
}

func NewPasswords(cfg config.AuthConfig) (*Passwords, error) {
	if cfg.BcryptCost < 10 || cfg.BcryptCost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cfg.BcryptCost)
	}
	return &Passwords{cost: cfg.BcryptCost, pepper: cfg.Pepper}, nil
}

// Hash returns the bcrypt hash of pw.
func (p *Passwords) Hash(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+p.pepper), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether pw matches storedHash.
func (p *Passwords) Verify(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+p.pepper)) == nil
}
