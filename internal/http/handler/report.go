package handler

import (
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/service"
)

type reportRequest struct {
	ReportType string `json:"reportType"`
	Period     string `json:"period"`
}

// GenerateReport godoc
// @Summary Render an analytics report as PDF
// @Tags reports
// @Accept json
// @Produce application/pdf
// @Router /reports/generate [post]
func GenerateReport(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req reportRequest
		// Every field is optional, so an empty body means defaults.
		if len(c.Body()) > 0 {
			if err := bind(c, &req); err != nil {
				return respondError(c, err)
			}
		}

		rep, err := svc.Generate(c.UserContext(), service.ReportInput{
			Type:   req.ReportType,
			Period: req.Period,
		})
		if err != nil {
			return respondError(c, err)
		}

		c.Attachment(rep.Filename)
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Status(fiber.StatusOK).Send(rep.Content)
	}
}
