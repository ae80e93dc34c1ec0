package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"coverapi/internal/http/middleware"
	"coverapi/internal/model"
	"coverapi/internal/service"
)

// RealtimeAnalytics godoc
// @Summary Dashboard counters and process info
// @Description Always answers 200. On failure success is false and the counters are zero.
// @Tags analytics
// @Produce json
// @Router /analytics/realtime [get]
func RealtimeAnalytics(svc service.AnalyticsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := svc.Realtime(c.UserContext())
		if err != nil {
			middleware.LogEntry(c).WithFields(logrus.Fields{
				"path":  c.Path(),
				"cause": err.Error(),
			}).Warn("analytics unavailable, serving placeholder")

			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"success": false,
				"error":   "Analytics indisponibles",
				"data":    model.RealtimeAnalytics{LastUpdate: time.Now().UTC()},
			})
		}
		return respond(c, fiber.StatusOK, fiber.Map{"data": data})
	}
}
