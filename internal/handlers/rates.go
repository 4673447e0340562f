package handlers

import (
	"kycdesk/internal/services/rates"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// GetRate handles GET /api/rates?from=&to=
func GetRate(c *fiber.Ctx) error {
	rate, err := rates.Rate(c.Query("from"), c.Query("to"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(fiber.Map{"rate": rate})
}
