package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
)

// Protected parses the Bearer token and stores the admin claims in the
// request context under "admin"
func Protected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return models.ErrUnauthorized
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return err
		}

		c.Locals("admin", claims)
		return c.Next()
	}
}

// RequireRole rejects requests whose token carries a role below min.
// Must run after Protected.
func RequireRole(min string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("admin").(*services.AdminClaims)
		if !ok {
			return models.ErrUnauthorized
		}
		if !models.RoleAtLeast(claims.Role, min) {
			return models.ErrForbidden
		}
		return c.Next()
	}
}
