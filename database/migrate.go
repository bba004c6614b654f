// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"manabi/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Lesson{},
		&models.LessonProgress{},
		&models.StudySession{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()
	SeedData()

	log.Println("✅ All migrations completed successfully")
}

func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_level ON users(level DESC)")

	// Progress indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lesson_progress_user ON lesson_progress(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lesson_progress_status ON lesson_progress(status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lesson_progress_completed ON lesson_progress(completed_at DESC)")

	// Study session indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_study_sessions_user ON study_sessions(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_study_sessions_date ON study_sessions(date DESC)")

	// Lesson and achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lessons_category ON lessons(category_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_lessons_active ON lessons(is_active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
}
