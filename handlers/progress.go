// handlers/progress.go
package handlers

import (
	"manabi/database"
	"manabi/middleware"
	"manabi/models"
	"manabi/services"
	"manabi/utils"

	"github.com/gofiber/fiber/v2"
)

type AwardXPRequest struct {
	XPEarned         int `json:"xp_earned" validate:"min=0"`
	Duration         int `json:"duration" validate:"min=0"`          // minutes
	LessonsCompleted int `json:"lessons_completed" validate:"min=0"` // lessons
}

type DailyGoalRequest struct {
	DailyGoal int `json:"daily_goal" validate:"required,min=1,max=50"`
}

// AwardXP records an XP-awarding study event and returns the updated user
// snapshot.
func AwardXP(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req AwardXPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := services.AwardXP(database.GetDB(), userID, services.AwardXPInput{
		XPEarned:         req.XPEarned,
		Duration:         req.Duration,
		LessonsCompleted: req.LessonsCompleted,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":             result.User,
		"xp_earned":        result.XPEarned,
		"leveled_up":       result.LeveledUp,
		"new_achievements": result.NewAchievements,
	})
}

// GetProgressOverview returns the aggregated dashboard snapshot.
func GetProgressOverview(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	data, err := services.Overview(database.GetDB(), userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(data)
}

// UpdateDailyGoal sets the user's lessons-per-day target.
func UpdateDailyGoal(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	var req DailyGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := utils.ValidateStruct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()
	res := db.Model(&models.User{}).Where("id = ?", userID).Update("daily_goal", req.DailyGoal)
	if res.Error != nil {
		return serviceError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{
		"message":    "Daily goal updated successfully",
		"daily_goal": req.DailyGoal,
	})
}
