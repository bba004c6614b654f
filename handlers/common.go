// handlers/common.go
package handlers

import (
	"errors"
	"log"

	"manabi/services"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps service-layer errors onto HTTP responses. Unknown errors
// are logged with their cause and surfaced as a generic 500.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, services.ErrCategoryNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Category not found"})
	case errors.Is(err, services.ErrLessonNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Lesson not found"})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request data"})
	default:
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
	}
}
