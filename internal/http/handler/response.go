package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coverapi/internal/apperror"
	"coverapi/internal/http/middleware"
)

// errorPayload is the failure envelope returned by every endpoint.
type errorPayload struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// respond writes a success envelope: fields are laid next to success:true.
func respond(c *fiber.Ctx, status int, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

// respondError maps err to its status and writes the failure envelope.
// Server-side failures are logged with the request context; their cause never reaches the client.
func respondError(c *fiber.Ctx, err error) error {
	status := apperror.StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		middleware.LogEntry(c).WithFields(logrus.Fields{
			"path":  c.Path(),
			"cause": err.Error(),
		}).Error("request failed")

		span := trace.SpanFromContext(c.UserContext())
		span.RecordError(err)
		span.SetStatus(codes.Error, apperror.PublicMessage(err))
	}

	return c.Status(status).JSON(errorPayload{
		Success: false,
		Error:   apperror.PublicMessage(err),
		Details: apperror.PublicDetails(err),
	})
}

// ErrorHandler returns a Fiber global error handler that writes the failure envelope
// for router-level errors and anything a handler returns unhandled.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return respondError(c, err)
		}

		msg := "Erreur interne du serveur"
		switch fe.Code {
		case fiber.StatusBadRequest:
			msg = "Requête invalide"
		case fiber.StatusNotFound:
			msg = "Ressource introuvable"
		case fiber.StatusMethodNotAllowed:
			msg = "Méthode non autorisée"
		case fiber.StatusRequestEntityTooLarge:
			msg = "Fichier trop volumineux"
		}
		return c.Status(fe.Code).JSON(errorPayload{Success: false, Error: msg})
	}
}
