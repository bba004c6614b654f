// services/achievements.go - Achievement unlock checks
package services

import (
	"time"

	"manabi/models"

	"gorm.io/gorm"
)

// checkAchievements runs inside the award transaction with the user row
// already locked. Each active, not-yet-unlocked achievement is tested
// against the user's freshly updated progression; unlocked ones are recorded
// and their XP reward folded into the same user update.
func checkAchievements(tx *gorm.DB, user *models.User) ([]models.Achievement, error) {
	var all []models.Achievement
	if err := tx.Where("is_active = ?", true).Find(&all).Error; err != nil {
		return nil, err
	}

	var unlockedIDs []uint
	if err := tx.Model(&models.UserAchievement{}).
		Where("user_id = ?", user.ID).
		Pluck("achievement_id", &unlockedIDs).Error; err != nil {
		return nil, err
	}

	unlockedMap := make(map[uint]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedMap[id] = true
	}

	newAchievements := []models.Achievement{}
	for _, achievement := range all {
		if unlockedMap[achievement.ID] {
			continue
		}

		unlocked, err := achievementUnlocked(tx, achievement, user)
		if err != nil {
			return nil, err
		}
		if !unlocked {
			continue
		}

		userAchievement := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: achievement.ID,
			UnlockedAt:    time.Now(),
		}
		if err := tx.Create(&userAchievement).Error; err != nil {
			return nil, err
		}

		user.XP += achievement.XPReward
		user.Level = LevelForXP(user.XP)

		newAchievements = append(newAchievements, achievement)
	}

	return newAchievements, nil
}

func achievementUnlocked(tx *gorm.DB, achievement models.Achievement, user *models.User) (bool, error) {
	switch achievement.Category {
	case "Streak":
		return user.Streak >= achievement.Threshold, nil
	case "Level":
		return user.Level >= achievement.Threshold, nil
	case "Dedication":
		return user.TotalStudyTime >= achievement.Threshold, nil
	case "Lessons":
		var completed int64
		err := tx.Model(&models.LessonProgress{}).
			Where("user_id = ? AND status = ? AND lesson_id NOT LIKE ?",
				user.ID, models.StatusCompleted, "category-%").
			Count(&completed).Error
		if err != nil {
			return false, err
		}
		return int(completed) >= achievement.Threshold, nil
	}
	return false, nil
}
