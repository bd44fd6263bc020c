package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/pkg/utils"
)

// AuthRequired validates the Bearer token and stashes the subject and role
// in Locals for downstream handlers.
func AuthRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := strings.CutPrefix(c.Get("Authorization"), "Bearer ")
		if !ok || tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}
