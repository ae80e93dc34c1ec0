package handler

import (
	"github.com/gofiber/fiber/v2"

	"coverapi/internal/apperror"
	"coverapi/internal/model"
	"coverapi/internal/service"
)

// UploadFile godoc
// @Summary Upload a user file
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "file"
// @Param userId formData string true "owner id"
// @Param type formData string true "avatar, cv or document"
// @Router /upload [post]
func UploadFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return respondError(c, apperror.Validation("file", "Fichier requis"))
		}

		userID := c.FormValue("userId")
		if userID == "" {
			return respondError(c, apperror.Validation("userId", "userId requis"))
		}
		fileType := c.FormValue("type")
		if fileType == "" {
			return respondError(c, apperror.Validation("type", "type requis"))
		}

		f, err := fh.Open()
		if err != nil {
			return respondError(c, apperror.Validation("file", "Fichier illisible"))
		}
		defer f.Close()

		rec, err := svc.Upload(c.UserContext(), service.UploadInput{
			UserID:      userID,
			Type:        model.FileType(fileType),
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Reader:      f,
		})
		if err != nil {
			return respondError(c, err)
		}
		// A signed link is the only readable URL when the bucket is private.
		url := rec.FileURL
		if rec.DownloadURL != "" {
			url = rec.DownloadURL
		}
		return respond(c, fiber.StatusOK, fiber.Map{
			"file": rec,
			"url":  url,
		})
	}
}

// DeleteFile godoc
// @Summary Delete a file owned by userId
// @Tags upload
// @Produce json
// @Param fileId query string true "file id"
// @Param userId query string true "owner id"
// @Router /upload [delete]
func DeleteFile(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Query("fileId"), c.Query("userId")); err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"message": "Fichier supprimé"})
	}
}

// ListFiles godoc
// @Summary List the files of a user
// @Tags upload
// @Produce json
// @Param userId query string true "owner id"
// @Router /upload [get]
func ListFiles(svc service.FileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		files, err := svc.List(c.UserContext(), c.Query("userId"))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, fiber.Map{"files": files})
	}
}
