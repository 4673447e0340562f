package logging

import (
	"errors"
	"time"

	"kycdesk/internal/requestctx"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Middleware emits one structured event per request.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Func(func(e *zerolog.Event) {
				if p, ok := requestctx.Principal(c.UserContext()); ok {
					e.Str("user_id", p.UserID.String()).Str("role", string(p.Role))
				}
			}).
			Msg("http_request")

		return err
	}
}
