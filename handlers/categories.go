// handlers/categories.go
package handlers

import (
	"manabi/database"
	"manabi/middleware"
	"manabi/services"
	"manabi/utils"

	"github.com/gofiber/fiber/v2"
)

type CategoryProgressRequest struct {
	CategoryID       int    `json:"category_id" validate:"required,min=1"`
	CompletedLessons int    `json:"completed_lessons" validate:"min=0"`
	Action           string `json:"action" validate:"omitempty,oneof=progress complete"`
}

// GetCategoryProgress returns all catalog categories merged with the user's
// stored progress and unlock state.
func GetCategoryProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := services.CategoryProgressList(database.GetDB(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(list)
}

// UpdateCategoryProgress upserts a category's aggregate progress record and,
// on a fresh completion with action "complete", awards the category XP.
func UpdateCategoryProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req CategoryProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.SaveCategoryProgress(database.GetDB(), userID,
		req.CategoryID, req.CompletedLessons, req.Action)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}
