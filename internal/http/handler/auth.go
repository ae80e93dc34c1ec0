package handler

import (
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/apperror"
	"coverapi/internal/http/middleware"
	"coverapi/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

type providerAuthRequest struct {
	Action    string `json:"action" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Login godoc
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		s, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"token":     s.Token,
			"expiresAt": s.ExpiresAt,
			"user":      s.User,
			"message":   "Connexion réussie",
		})
	}
}

// Register godoc
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
		})
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"user":    u,
			"message": "Inscription réussie",
		})
	}
}

// ProviderAuth godoc
// @Summary Provider-compatible sign up and sign in
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/supabase [post]
func ProviderAuth(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req providerAuthRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		s, err := svc.ProviderAuth(c.UserContext(), service.ProviderAuthInput{
			Action:    req.Action,
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"user":    s.User,
			"session": s.Session,
		})
	}
}

// VerifySession godoc
// @Summary Resolve the user behind an access token
// @Tags auth
// @Produce json
// @Param token query string true "access token"
// @Router /auth/supabase [get]
func VerifySession(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.VerifyToken(c.UserContext(), c.Query("token"))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"user": u})
	}
}

// Logout godoc
// @Summary Revoke the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Router /auth/logout [post]
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := middleware.BearerToken(c)
		if token == "" {
			return respondError(c, apperror.Auth("Token manquant"))
		}
		if err := svc.Logout(c.UserContext(), token); err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"message": "Déconnexion réussie"})
	}
}

// Me godoc
// @Summary Profile of the signed-in user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Router /auth/me [get]
func Me(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := svc.Me(c.UserContext(), middleware.UserID(c))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"profile": p})
	}
}
