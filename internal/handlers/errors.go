package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"artizon/internal/gateway"
)

// statusForError maps gateway failures to the status the local surface
// answers with: session expiry is 401, backend rejections keep their status,
// transport trouble is a bad gateway.
func statusForError(err error) int {
	var apiErr *gateway.APIError
	switch {
	case errors.As(err, new(*gateway.SessionExpiredError)):
		return fiber.StatusUnauthorized
	case errors.As(err, &apiErr):
		return apiErr.Status
	default:
		return fiber.StatusBadGateway
	}
}

// respondError writes the standard failure envelope.
func respondError(c *fiber.Ctx, message string, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondValidationError writes per-field validation failures.
func respondValidationError(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
