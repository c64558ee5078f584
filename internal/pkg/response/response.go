package response

import (
	"github.com/gofiber/fiber/v2"
)

// Success sends 200 with {"success": true} merged over the given fields,
// e.g. Success(c, fiber.Map{"transaction": tx}).
func Success(c *fiber.Ctx, fields fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Error sends {"error": message} with the given status code. All user-facing
// errors are advisory strings.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}

// Unauthorized sends 401 in the same shape as other errors.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// Forbidden sends 403 in the same shape as other errors.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusForbidden)
}
