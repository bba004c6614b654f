// services/progress_service.go - Transactional progress bookkeeping
//
// All XP/streak/progress mutations run inside one transaction that takes a
// row lock on the user (SELECT ... FOR UPDATE), so concurrent requests for
// the same user serialize instead of racing the read-modify-write sequence.
package services

import (
	"errors"
	"log"
	"time"

	"manabi/catalog"
	"manabi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrInvalidInput     = errors.New("invalid input")
)

type AwardXPInput struct {
	XPEarned         int
	Duration         int // minutes
	LessonsCompleted int
}

type AwardXPResult struct {
	User            models.User          `json:"user"`
	XPEarned        int                  `json:"xp_earned"`
	LeveledUp       bool                 `json:"leveled_up"`
	NewAchievements []models.Achievement `json:"new_achievements"`
}

// AwardXP applies an XP-awarding event: streak transition, today's study
// session accrual, XP/level update, and achievement checks, all in one
// transaction keyed by the user row lock.
func AwardXP(db *gorm.DB, userID uint, in AwardXPInput) (*AwardXPResult, error) {
	if in.XPEarned < 0 || in.Duration < 0 || in.LessonsCompleted < 0 {
		return nil, ErrInvalidInput
	}

	var result AwardXPResult
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		today := StartOfDay(time.Now())
		yesterday := today.AddDate(0, 0, -1)

		hasToday, err := sessionExists(tx, userID, today)
		if err != nil {
			return err
		}
		hasYesterday, err := sessionExists(tx, userID, yesterday)
		if err != nil {
			return err
		}

		newStreak := NextStreak(user.Streak, hasToday, hasYesterday)
		longest := user.LongestStreak
		if newStreak > longest {
			longest = newStreak
		}

		if hasToday {
			err = tx.Model(&models.StudySession{}).
				Where("user_id = ? AND date = ?", userID, today).
				Updates(map[string]interface{}{
					"duration":          gorm.Expr("duration + ?", in.Duration),
					"xp_earned":         gorm.Expr("xp_earned + ?", in.XPEarned),
					"lessons_completed": gorm.Expr("lessons_completed + ?", in.LessonsCompleted),
				}).Error
		} else {
			err = tx.Create(&models.StudySession{
				UserID:           userID,
				Date:             today,
				Duration:         in.Duration,
				XPEarned:         in.XPEarned,
				LessonsCompleted: in.LessonsCompleted,
			}).Error
		}
		if err != nil {
			return err
		}

		oldLevel := user.Level
		user.XP += in.XPEarned
		user.Level = LevelForXP(user.XP)
		user.Streak = newStreak
		user.LongestStreak = longest
		user.TotalStudyTime += in.Duration

		newAchievements, err := checkAchievements(tx, &user)
		if err != nil {
			return err
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		result = AwardXPResult{
			User:            user,
			XPEarned:        in.XPEarned,
			LeveledUp:       user.Level > oldLevel,
			NewAchievements: newAchievements,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type CategoryProgressResult struct {
	Progress         models.LessonProgress `json:"progress"`
	Category         catalog.Category      `json:"category"`
	CompletedLessons int                   `json:"completed_lessons"`
	ProgressPercent  int                   `json:"progress_percentage"`
	XPAwarded        bool                  `json:"xp_awarded"`
	Award            *AwardXPResult        `json:"award,omitempty"`
}

// SaveCategoryProgress upserts a category's aggregate progress record. The
// completed count is clamped to the category's lesson total. XP is awarded
// only when the caller asked to complete ("action == complete") AND this call
// is the first one to reach COMPLETED, so a replayed request never pays the
// reward twice.
func SaveCategoryProgress(db *gorm.DB, userID uint, categoryID, completedLessons int, action string) (*CategoryProgressResult, error) {
	cat, ok := catalog.CategoryByID(categoryID)
	if !ok {
		return nil, ErrCategoryNotFound
	}

	clamped := ClampCompleted(completedLessons, cat.TotalLessons)
	status := StatusForCount(clamped, cat.TotalLessons)
	isCompleted := status == models.StatusCompleted
	lessonID := catalog.ProgressID(categoryID)

	var progress models.LessonProgress
	freshCompletion := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		now := time.Now()
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = models.LessonProgress{
				UserID:        userID,
				LessonID:      lessonID,
				Status:        status,
				Score:         clamped,
				Attempts:      1,
				LastAttemptAt: now,
			}
			if isCompleted {
				progress.CompletedAt = &now
				freshCompletion = true
			}
			return tx.Create(&progress).Error
		case err != nil:
			return err
		}

		freshCompletion = isCompleted && progress.CompletedAt == nil
		progress.Status = status
		progress.Score = clamped
		progress.Attempts++
		progress.LastAttemptAt = now
		if freshCompletion {
			progress.CompletedAt = &now
		}
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}

	result := &CategoryProgressResult{
		Progress:         progress,
		Category:         cat,
		CompletedLessons: clamped,
		ProgressPercent:  ProgressPercent(clamped, cat.TotalLessons),
	}

	// Progress persistence takes priority over gamification: a failed XP
	// award is logged, not surfaced.
	if freshCompletion && action == "complete" {
		award, err := AwardXP(db, userID, AwardXPInput{
			XPEarned:         cat.XPReward,
			LessonsCompleted: 1,
		})
		if err != nil {
			log.Printf("category %d completed but XP award failed for user %d: %v", categoryID, userID, err)
		} else {
			result.XPAwarded = true
			result.Award = award
		}
	}

	return result, nil
}

type LessonProgressInput struct {
	LessonID  string
	Status    string
	Score     *int
	TimeSpent *int // seconds for this attempt
}

type LessonProgressResult struct {
	Progress  models.LessonProgress `json:"progress"`
	Lesson    models.Lesson         `json:"lesson"`
	XPAwarded bool                  `json:"xp_awarded"`
	Award     *AwardXPResult        `json:"award,omitempty"`
}

// SaveLessonProgress upserts an interactive lesson's progress record.
// Attempts increment on every call, time accumulates, and the first
// transition into COMPLETED triggers the lesson's XP reward in-process.
func SaveLessonProgress(db *gorm.DB, userID uint, in LessonProgressInput) (*LessonProgressResult, error) {
	if !models.ValidStatus(in.Status) {
		return nil, ErrInvalidInput
	}

	var lesson models.Lesson
	if err := db.Where("key = ? AND is_active = ?", in.LessonID, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}

	var progress models.LessonProgress
	freshCompletion := false
	isCompleted := in.Status == models.StatusCompleted

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		now := time.Now()
		err := tx.Where("user_id = ? AND lesson_id = ?", userID, in.LessonID).First(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = models.LessonProgress{
				UserID:        userID,
				LessonID:      in.LessonID,
				Status:        in.Status,
				Attempts:      1,
				LastAttemptAt: now,
			}
			if in.Score != nil {
				progress.Score = *in.Score
			}
			if in.TimeSpent != nil {
				progress.TimeSpent = *in.TimeSpent
			}
			if isCompleted {
				progress.CompletedAt = &now
				freshCompletion = true
			}
			return tx.Create(&progress).Error
		case err != nil:
			return err
		}

		freshCompletion = isCompleted && progress.CompletedAt == nil
		progress.Status = in.Status
		progress.Attempts++
		progress.LastAttemptAt = now
		if in.Score != nil {
			progress.Score = *in.Score
		}
		if in.TimeSpent != nil {
			progress.TimeSpent += *in.TimeSpent
		}
		if freshCompletion {
			progress.CompletedAt = &now
		}
		return tx.Save(&progress).Error
	})
	if err != nil {
		return nil, err
	}

	result := &LessonProgressResult{Progress: progress, Lesson: lesson}

	if freshCompletion {
		minutes := 0
		if in.TimeSpent != nil {
			minutes = (*in.TimeSpent + 59) / 60
		}
		award, err := AwardXP(db, userID, AwardXPInput{
			XPEarned:         lesson.XPReward,
			Duration:         minutes,
			LessonsCompleted: 1,
		})
		if err != nil {
			log.Printf("lesson %s completed but XP award failed for user %d: %v", in.LessonID, userID, err)
		} else {
			result.XPAwarded = true
			result.Award = award
		}
	}

	return result, nil
}

// CategoryWithProgress merges static category metadata with a user's stored
// aggregate progress.
type CategoryWithProgress struct {
	catalog.Category
	CompletedLessons int        `json:"completed_lessons"`
	Status           string     `json:"status"`
	LastAttemptAt    *time.Time `json:"last_attempt_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	IsUnlocked       bool       `json:"is_unlocked"`
	ProgressPercent  int        `json:"progress_percentage"`
}

// CategoryProgressList returns every catalog category merged with the user's
// stored progress, including the unlock state.
func CategoryProgressList(db *gorm.DB, userID uint) ([]CategoryWithProgress, error) {
	var records []models.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id LIKE ?", userID, "category-%").Find(&records).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[int]models.LessonProgress, len(records))
	for _, rec := range records {
		if id, ok := catalog.ParseProgressID(rec.LessonID); ok {
			byCategory[id] = rec
		}
	}

	cats := catalog.Categories()
	out := make([]CategoryWithProgress, 0, len(cats))
	for _, cat := range cats {
		entry := CategoryWithProgress{
			Category: cat,
			Status:   models.StatusNotStarted,
		}
		if rec, ok := byCategory[cat.ID]; ok {
			entry.CompletedLessons = rec.Score
			entry.Status = rec.Status
			last := rec.LastAttemptAt
			entry.LastAttemptAt = &last
			entry.CompletedAt = rec.CompletedAt
		}
		entry.IsUnlocked = catalog.IsUnlocked(cat.ID, entry.CompletedLessons)
		entry.ProgressPercent = ProgressPercent(entry.CompletedLessons, cat.TotalLessons)
		out = append(out, entry)
	}
	return out, nil
}

// LessonProgressEntry pairs a stored progress row with its lesson metadata.
type LessonProgressEntry struct {
	models.LessonProgress
	Lesson *models.Lesson `json:"lesson,omitempty"`
}

// LessonProgressList returns the user's interactive lesson progress rows
// with their lessons attached. Category aggregates are excluded.
func LessonProgressList(db *gorm.DB, userID uint) ([]LessonProgressEntry, error) {
	var records []models.LessonProgress
	if err := db.Where("user_id = ? AND lesson_id NOT LIKE ?", userID, "category-%").
		Order("last_attempt_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.LessonID)
	}

	lessonsByKey := make(map[string]models.Lesson, len(keys))
	if len(keys) > 0 {
		var lessons []models.Lesson
		if err := db.Where("key IN ?", keys).Find(&lessons).Error; err != nil {
			return nil, err
		}
		for _, l := range lessons {
			lessonsByKey[l.Key] = l
		}
	}

	out := make([]LessonProgressEntry, 0, len(records))
	for _, rec := range records {
		entry := LessonProgressEntry{LessonProgress: rec}
		if lesson, ok := lessonsByKey[rec.LessonID]; ok {
			l := lesson
			entry.Lesson = &l
		}
		out = append(out, entry)
	}
	return out, nil
}

func sessionExists(tx *gorm.DB, userID uint, day time.Time) (bool, error) {
	var count int64
	err := tx.Model(&models.StudySession{}).
		Where("user_id = ? AND date = ?", userID, day).
		Count(&count).Error
	return count > 0, err
}
