// handlers/achievements.go
package handlers

import (
	"manabi/database"
	"manabi/middleware"
	"manabi/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserAchievements lists every active achievement with the user's unlock
// state.
func GetUserAchievements(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	db := database.GetDB()

	var unlocked []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Order("unlocked_at DESC").Find(&unlocked).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var all []models.Achievement
	if err := db.Where("is_active = ?", true).Find(&all).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch all achievements"})
	}

	unlockedMap := make(map[uint]models.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		unlockedMap[ua.AchievementID] = ua
	}

	achievements := make([]fiber.Map, 0, len(all))
	for _, achievement := range all {
		achData := fiber.Map{
			"id":          achievement.ID,
			"name":        achievement.Name,
			"description": achievement.Description,
			"category":    achievement.Category,
			"tier":        achievement.Tier,
			"icon":        achievement.Icon,
			"xp_reward":   achievement.XPReward,
			"unlocked":    false,
		}

		if ua, ok := unlockedMap[achievement.ID]; ok {
			achData["unlocked"] = true
			achData["unlocked_at"] = ua.UnlockedAt
		}

		achievements = append(achievements, achData)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"achievements": achievements,
		"total":        len(all),
		"unlocked":     len(unlocked),
	})
}
