// handlers/lessons.go
package handlers

import (
	"manabi/catalog"
	"manabi/database"
	"manabi/middleware"
	"manabi/models"
	"manabi/services"
	"manabi/utils"

	"github.com/gofiber/fiber/v2"
)

type LessonProgressRequest struct {
	LessonID  string `json:"lesson_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=NOT_STARTED IN_PROGRESS COMPLETED"`
	Score     *int   `json:"score,omitempty" validate:"omitempty,min=0"`
	TimeSpent *int   `json:"time_spent,omitempty" validate:"omitempty,min=0"` // seconds
}

// GetLessons returns the category catalog with each category's active
// interactive lessons.
func GetLessons(c *fiber.Ctx) error {
	db := database.GetDB()

	var lessons []models.Lesson
	if err := db.Where("is_active = ?", true).
		Order("category_id, \"order\"").Find(&lessons).Error; err != nil {
		return serviceError(c, err)
	}

	byCategory := make(map[int][]models.Lesson)
	for _, lesson := range lessons {
		byCategory[lesson.CategoryID] = append(byCategory[lesson.CategoryID], lesson)
	}

	cats := catalog.Categories()
	out := make([]fiber.Map, 0, len(cats))
	for _, cat := range cats {
		entry := fiber.Map{
			"id":            cat.ID,
			"title":         cat.Title,
			"total_lessons": cat.TotalLessons,
			"difficulty":    cat.Difficulty,
			"xp_reward":     cat.XPReward,
			"lessons":       []models.Lesson{},
		}
		if list, ok := byCategory[cat.ID]; ok {
			entry["lessons"] = list
		}
		out = append(out, entry)
	}

	return c.JSON(out)
}

// GetLessonProgress returns the user's interactive lesson progress records.
func GetLessonProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := services.LessonProgressList(database.GetDB(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(list)
}

// UpdateLessonProgress upserts a lesson progress record; the first
// transition into COMPLETED awards the lesson's XP in-process.
func UpdateLessonProgress(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req LessonProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.SaveLessonProgress(database.GetDB(), userID, services.LessonProgressInput{
		LessonID:  req.LessonID,
		Status:    req.Status,
		Score:     req.Score,
		TimeSpent: req.TimeSpent,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(result)
}
