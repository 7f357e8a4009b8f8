package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usernameRequest struct {
	Username string `json:"username"`
}

type deleteUsersRequest struct {
	IDs []string `json:"ids"`
}

// Register creates a new user account.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		user, err := svc.Register(c.UserContext(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUserExists):
				return writeError(c, fiber.StatusConflict, "USER_EXISTS", "username already taken")
			case errors.Is(err, service.ErrInvalidCredentials):
				return writeError(c, fiber.StatusBadRequest, "INVALID_CREDENTIALS", "username and password are required")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// Login verifies credentials and records a login activity row.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req credentialsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		user, err := svc.Login(c.UserContext(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(user)
	}
}

// Logout records a logout activity row.
func Logout(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req usernameRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		if err := svc.Logout(c.UserContext(), req.Username); err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "USERNAME_REQUIRED", "username is required")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"status": "logged out"})
	}
}

// ListUsers returns all registered users.
func ListUsers(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(users)
	}
}

// DeleteUsers removes users by id. Every id must be a valid UUID.
func DeleteUsers(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteUsersRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		if err := svc.DeleteUsers(c.UserContext(), req.IDs); err != nil {
			if errors.Is(err, service.ErrIDRequired) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ActiveUsers returns usernames considered online right now.
func ActiveUsers(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names, err := svc.ActiveUsers(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"count": len(names), "users": names})
	}
}
