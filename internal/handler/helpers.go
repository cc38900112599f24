package handler

import (
	"errors"

	"go-stock-opname/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrActiveSessionExists):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrSessionNotActive),
		errors.Is(err, service.ErrSessionCompleted):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// Helper untuk ambil actor label dari JWT Context (set by auth middleware)
func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "system"
	}
	return userName.(string)
}

// Helper untuk parse UUID dari path param
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
