// Package middleware provides HTTP middleware for authentication,
// authorization and request metrics.
package middleware

import (
	"strings"

	apperrors "kycdesk/internal/errors"
	"kycdesk/internal/models"
	"kycdesk/internal/requestctx"
	"kycdesk/internal/services/auth"
	"kycdesk/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const principalLocal = "principal"

// AuthMiddleware validates bearer tokens and resolves the caller.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler rejects requests without a valid bearer token. On success the
// principal is stored on the request's user context and in locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.FromError(c, apperrors.ErrMissingToken)
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if tokenString == "" {
		return response.FromError(c, apperrors.ErrMissingToken)
	}

	p, err := m.authService.Authenticate(c.UserContext(), tokenString)
	if err != nil {
		return response.FromError(c, err)
	}

	c.Locals(principalLocal, p)
	c.SetUserContext(requestctx.WithPrincipal(c.UserContext(), p))
	return c.Next()
}

// Client copies the caller's address and User-Agent into the user context.
func Client() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.SetUserContext(requestctx.WithClient(c.UserContext(), c.IP(), c.Get(fiber.HeaderUserAgent)))
		return c.Next()
	}
}

// PrincipalFrom returns the caller resolved by Handler.
func PrincipalFrom(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(principalLocal).(models.Principal)
	return p, ok
}

// RequireRoles allows only callers holding one of roles.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return response.FromError(c, apperrors.ErrMissingToken)
		}
		if !p.HasRole(roles...) {
			return response.FromError(c, apperrors.ErrInsufficientRole)
		}
		return c.Next()
	}
}
