package middleware

import (
	"github.com/gofiber/fiber/v2"

	"stockroom/internal/database"
)

func AdminMiddleware(c *fiber.Ctx) error {
	user := c.Locals("user").(database.User)

	if user.Role != database.RoleAdmin {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Unauthorized",
		})
	}

	return c.Next()
}
