package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"coverapi/internal/auth"
)

const (
	// UserIDLocalKey holds the authenticated user's id.
	UserIDLocalKey = "user_id"
	// TokenLocalKey holds the raw bearer token.
	TokenLocalKey = "access_token"
)

// TokenVerifier validates a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

// Bearer rejects requests without a valid Authorization: Bearer token.
func Bearer(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return unauthorized(c, "Token manquant")
		}

		claims, err := v.Verify(c.UserContext(), token)
		if err != nil {
			LogEntry(c).WithError(err).Debug("bearer token rejected")
			return unauthorized(c, "Token invalide ou expiré")
		}

		c.Locals(UserIDLocalKey, claims.UserID())
		c.Locals(TokenLocalKey, token)
		return c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// UserID returns the id stored by Bearer.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}
