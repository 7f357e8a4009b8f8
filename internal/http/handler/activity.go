package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/service"
)

type recordEventRequest struct {
	Username   string    `json:"username"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

// GetLogs returns login/logout activity, newest first.
func GetLogs(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		logs, err := svc.Logs(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(logs)
	}
}

// RecordEvent stores a UI event such as a button click or a processed document.
func RecordEvent(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req recordEventRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		ev, err := svc.RecordEvent(c.UserContext(), req.Username, req.Action, req.OccurredAt)
		if err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "FIELDS_REQUIRED", "username and action are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(ev)
	}
}

// ListEvents returns stored UI events, newest first.
func ListEvents(svc service.ActivityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		events, err := svc.ListEvents(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(events)
	}
}
