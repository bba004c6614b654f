// database/seed.go - Seed fixtures for lessons and achievements
package database

import (
	"log"

	"manabi/models"

	"gorm.io/gorm/clause"
)

// SeedData inserts the interactive lesson fixtures and the achievement
// definitions. Idempotent: existing rows (matched by their unique keys) are
// left untouched.
func SeedData() {
	db := GetDB()

	lessons := []models.Lesson{
		{Key: "lesson-hiragana-vowels", Title: "Hiragana Vowels", Description: "Learn the 5 basic hiragana vowels: あ, い, う, え, お", CategoryID: 2, Difficulty: "Beginner", XPReward: 15, Order: 1, IsActive: true},
		{Key: "lesson-hiragana-ka-row", Title: "Hiragana K-sounds", Description: "Learn the か row: か, き, く, け, こ", CategoryID: 2, Difficulty: "Beginner", XPReward: 20, Order: 2, IsActive: true},
		{Key: "lesson-greetings-basics", Title: "Everyday Greetings", Description: "Konnichiwa, arigatou, and friends", CategoryID: 1, Difficulty: "Beginner", XPReward: 15, Order: 1, IsActive: true},
		{Key: "lesson-greetings-polite", Title: "Polite Greetings", Description: "Formal greetings for work and strangers", CategoryID: 1, Difficulty: "Beginner", XPReward: 20, Order: 2, IsActive: true},
		{Key: "lesson-body-parts-face", Title: "Parts of the Face", Description: "Me, hana, kuchi, mimi", CategoryID: 5, Difficulty: "Beginner", XPReward: 10, Order: 1, IsActive: true},
		{Key: "lesson-colors-basic", Title: "Basic Colors", Description: "Aka, ao, shiro, kuro, kiiro", CategoryID: 9, Difficulty: "Beginner", XPReward: 10, Order: 1, IsActive: true},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&lessons).Error; err != nil {
		log.Printf("Failed to seed lessons: %v", err)
	}

	achievements := []models.Achievement{
		{Name: "First Steps", Description: "Complete your first lesson", Category: "Lessons", Tier: "Beginner", Icon: "👣", Threshold: 1, XPReward: 25, IsActive: true},
		{Name: "Dedicated Student", Description: "Complete 10 lessons", Category: "Lessons", Tier: "Intermediate", Icon: "📚", Threshold: 10, XPReward: 100, IsActive: true},
		{Name: "Scholar", Description: "Complete 50 lessons", Category: "Lessons", Tier: "Advanced", Icon: "🎓", Threshold: 50, XPReward: 300, IsActive: true},
		{Name: "Hot Streak", Description: "Study 3 days in a row", Category: "Streak", Tier: "Beginner", Icon: "🔥", Threshold: 3, XPReward: 50, IsActive: true},
		{Name: "On Fire", Description: "Study 7 days in a row", Category: "Streak", Tier: "Intermediate", Icon: "🚀", Threshold: 7, XPReward: 150, IsActive: true},
		{Name: "Unstoppable", Description: "Study 30 days in a row", Category: "Streak", Tier: "Elite", Icon: "⚡", Threshold: 30, XPReward: 500, IsActive: true},
		{Name: "Level 5", Description: "Reach level 5", Category: "Level", Tier: "Beginner", Icon: "⭐", Threshold: 5, XPReward: 50, IsActive: true},
		{Name: "Level 10", Description: "Reach level 10", Category: "Level", Tier: "Intermediate", Icon: "🌟", Threshold: 10, XPReward: 150, IsActive: true},
		{Name: "Hour of Power", Description: "Study for 60 minutes total", Category: "Dedication", Tier: "Beginner", Icon: "⏰", Threshold: 60, XPReward: 50, IsActive: true},
		{Name: "Marathon Learner", Description: "Study for 10 hours total", Category: "Dedication", Tier: "Advanced", Icon: "🏃", Threshold: 600, XPReward: 250, IsActive: true},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&achievements).Error; err != nil {
		log.Printf("Failed to seed achievements: %v", err)
	}
}
