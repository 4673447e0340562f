package handlers

import (
	"kycdesk/internal/middleware"
	"kycdesk/internal/services/transaction"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service transaction.Service
}

func NewTransactionHandler(s transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: s}
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	txs, err := h.service.List(c.UserContext(), p, c.Query("region"), c.Query("status"), c.Query("filter"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(txs)
}

// Stats handles GET /api/transactions/stats?region=
func (h *TransactionHandler) Stats(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	stats, err := h.service.Stats(c.UserContext(), p, c.Query("region"))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(stats)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	p, _ := middleware.PrincipalFrom(c)
	var input transaction.CreateRequest
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid transaction")
	}

	if err := h.service.Create(c.UserContext(), p, input); err != nil {
		return response.FromError(c, err)
	}
	return response.Message(c, "Transaction created")
}
