package handlers

import (
	"kycdesk/internal/middleware"
	"kycdesk/internal/services/auth"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login exchanges credentials for a session token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input auth.LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid input")
	}

	result, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(result)
}

// Me returns the caller's own record.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	user, err := h.authService.Me(c.UserContext(), p.UserID)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(user)
}
