package handler

import (
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/service"
)

type chatRequest struct {
	Message string `json:"message" validate:"required"`
	UserID  string `json:"userId"`
	Context string `json:"context"`
}

type headshotRequest struct {
	UserID string `json:"userId" validate:"required"`
	Type   string `json:"type"`
	Style  string `json:"style"`
}

type insightRequest struct {
	CVData      map[string]any `json:"cvData" validate:"required"`
	Preferences map[string]any `json:"preferences"`
	JobHistory  []any          `json:"jobHistory"`
}

// Chat godoc
// @Summary Ask the career assistant
// @Tags ai
// @Accept json
// @Produce json
// @Router /ai-chat [post]
func Chat(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		res, err := svc.Chat(c.UserContext(), service.ChatInput{
			Message: req.Message,
			UserID:  req.UserID,
			Context: req.Context,
		})
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"response":  res.Response,
			"provider":  res.Provider,
			"model":     res.Model,
			"timestamp": res.Timestamp,
		})
	}
}

// GenerateHeadshot godoc
// @Summary Generate a professional headshot
// @Tags ai
// @Accept json
// @Produce json
// @Router /generate-headshot [post]
func GenerateHeadshot(svc service.HeadshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req headshotRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		res, err := svc.Generate(c.UserContext(), service.HeadshotInput{
			UserID: req.UserID,
			Type:   req.Type,
			Style:  req.Style,
		})
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"image": res.Image,
			"file":  res.File,
		})
	}
}

// PredictInsights godoc
// @Summary Predict career insights from a CV
// @Tags ai
// @Accept json
// @Produce json
// @Router /predictive-analytics [post]
func PredictInsights(svc service.InsightService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req insightRequest
		if err := bind(c, &req); err != nil {
			return respondError(c, err)
		}

		res, err := svc.Predict(c.UserContext(), service.InsightInput{
			CVData:      req.CVData,
			Preferences: req.Preferences,
			JobHistory:  req.JobHistory,
		})
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"insights":  res.Insights,
			"timestamp": res.Timestamp,
		})
	}
}
