package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"betsy/internal/apperrors"
)

// statusFor maps the data layer's error kinds to HTTP statuses.
func statusFor(err error) int {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindInsufficientStock:
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the typed failure as a JSON body with the mapped
// status.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}
