package response

import (
	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var statusByCode = map[string]int{
	apperrors.CodeValidation:   fiber.StatusBadRequest,
	apperrors.CodeUnauthorized: fiber.StatusUnauthorized,
	apperrors.CodeForbidden:    fiber.StatusForbidden,
	apperrors.CodeNotFound:     fiber.StatusNotFound,
	apperrors.CodeThrottled:    fiber.StatusTooManyRequests,
}

func Message(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"message": message})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// FromError renders err with the status of its code. Anything without a
// known code is logged and answered with a generic 500.
func FromError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if !apperrors.As(err, &de) {
		de = apperrors.Internal(err)
	}

	status, ok := statusByCode[de.Code]
	if !ok {
		log.Error().Err(err).
			Str("path", c.Path()).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Msg("request failed")
		return Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	body := fiber.Map{"message": de.Message}
	var v *validation.Validator
	if apperrors.As(err, &v) {
		body["errors"] = v.Errors
	}
	return c.Status(status).JSON(body)
}
