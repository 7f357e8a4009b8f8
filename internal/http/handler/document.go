package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/service"
)

// UploadDocument accepts a multipart upload (field name: file) and streams it
// into the kind's bucket.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := paramKind(c)

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), kind, f, fh.Filename, ct, fh.Size)
		if err != nil {
			if errors.Is(err, service.ErrInvalidKind) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument streams a stored document by storage id, no token required.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := paramKind(c)
		id := paramID(c)

		rc, info, err := svc.Fetch(c.UserContext(), kind, id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidKind):
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return sendObject(c, rc, info, "inline")
	}
}

// DeleteDocument removes a stored document by storage id.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind := paramKind(c)
		id := paramID(c)

		if err := svc.Delete(c.UserContext(), kind, id); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidKind):
				return writeError(c, fiber.StatusBadRequest, "INVALID_KIND", "unknown document kind")
			case errors.Is(err, service.ErrIDRequired):
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			case errors.Is(err, service.ErrNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetTemplate streams the configured document template.
func GetTemplate(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.FetchTemplate(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "template not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return sendObject(c, rc, info, "attachment")
	}
}

// GetLatestExcel streams the most recently modified Excel file.
func GetLatestExcel(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := svc.FetchLatestExcel(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no excel files stored")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return sendObject(c, rc, info, "attachment")
	}
}
