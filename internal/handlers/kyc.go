package handlers

import (
	"fmt"

	"kycdesk/internal/middleware"
	"kycdesk/internal/services/kyc"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type KYCHandler struct {
	service kyc.Service
}

func NewKYCHandler(s kyc.Service) *KYCHandler { return &KYCHandler{service: s} }

// List handles GET /api/kyc?region=&status=&filter=
func (h *KYCHandler) List(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	cases, err := h.service.List(c.UserContext(), p, c.Query("region"), c.Query("status"), c.Query("filter"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(cases)
}

func (h *KYCHandler) Get(c *fiber.Ctx) error {
	detail, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(detail)
}

// Transition handles PATCH /api/kyc/:id with {action, reason}.
func (h *KYCHandler) Transition(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	var input kyc.TransitionRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid input")
	}

	status, err := h.service.Transition(c.UserContext(), p, c.Params("id"), input)
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("KYC case %s", status),
		"status":  status,
	})
}

func (h *KYCHandler) AddNote(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	var input kyc.NoteRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid input")
	}

	if err := h.service.AddNote(c.UserContext(), p, c.Params("id"), input); err != nil {
		return response.FromError(c, err)
	}
	return response.Message(c, "Note added")
}
