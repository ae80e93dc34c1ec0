package handler

import (
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/service"
)

// ListCoverLetters godoc
// @Summary List cover letters, newest first
// @Tags cover-letters
// @Produce json
// @Router /cover-letters [get]
func ListCoverLetters(svc service.CoverLetterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		letters, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(letters)
	}
}

// DeleteCoverLetter godoc
// @Summary Delete a cover letter
// @Tags cover-letters
// @Produce json
// @Param id query string true "cover letter id"
// @Router /cover-letters [delete]
func DeleteCoverLetter(svc service.CoverLetterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Query("id")); err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"message": "Lettre de motivation supprimée"})
	}
}

// GetCV godoc
// @Summary Fetch one CV by id, or all CVs
// @Tags cv
// @Produce json
// @Param id query string false "cv id"
// @Router /cv [get]
func GetCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id := c.Query("id"); id != "" {
			rec, err := svc.Get(c.UserContext(), id)
			if err != nil {
				return respondError(c, err)
			}
			return c.JSON(rec)
		}

		recs, err := svc.List(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(recs)
	}
}

// SaveCV godoc
// @Summary Store arbitrary CV fields
// @Tags cv
// @Accept json
// @Produce json
// @Router /cv [post]
func SaveCV(svc service.CVService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var fields map[string]any
		if err := decodeObject(c.Body(), &fields); err != nil {
			return respondError(c, err)
		}

		rec, err := svc.Save(c.UserContext(), fields)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"id":      rec.JSONID(),
			"message": "CV sauvegardé avec succès",
		})
	}
}
