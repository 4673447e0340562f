package handlers

import (
	"kycdesk/internal/middleware"
	"kycdesk/internal/services/audit"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	service audit.Service
}

func NewAuditHandler(s audit.Service) *AuditHandler { return &AuditHandler{service: s} }

// List handles GET /api/audit-logs?status=&filter=
func (h *AuditHandler) List(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	logs, err := h.service.List(c.UserContext(), p, c.Query("status"), c.Query("filter"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(logs)
}
