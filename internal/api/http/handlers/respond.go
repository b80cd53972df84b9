package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hirenow-api/internal/api/dto"
	apperrors "github.com/spec-kit/hirenow-api/pkg/util"
)

// success renders the uniform envelope with SUCCESS status.
func success(c *fiber.Ctx, message string, result any) error {
	return c.JSON(dto.Envelope{
		Status:  apperrors.StatusSuccess,
		Message: message,
		Result:  result,
	})
}

// badPayload is the shared error for unparsable request bodies.
func badPayload() error {
	return apperrors.NewValidationError("invalid payload", nil)
}
