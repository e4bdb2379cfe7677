package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"betsy/internal/services"
)

const bearerPrefix = "Bearer "

// AuthRequired guards a route group behind a valid JWT. On success the
// token's user_id and username claims are placed in the request locals
// for downstream handlers.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims["user_id"])
		c.Locals("username", claims["username"])
		return c.Next()
	}
}
