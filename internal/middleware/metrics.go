package middleware

import (
	"time"

	"kycdesk/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency by matched route.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		// route pattern, not the raw path, keeps label cardinality bounded
		m.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start))
		return err
	}
}
