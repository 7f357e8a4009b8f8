package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/model"
	"docflow/internal/service"
)

// SaveDataflow persists a customer dataflow engagement form.
func SaveDataflow(svc service.DataflowService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec model.DataflowRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		saved, err := svc.Save(c.UserContext(), &rec)
		if err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "CLIENT_NAME_REQUIRED", "client_name is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	}
}
