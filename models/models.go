// models/models.go - Core Models
package models

import (
	"time"
)

// Lesson progress status values.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// ValidStatus reports whether s is one of the known progress states.
func ValidStatus(s string) bool {
	return s == StatusNotStarted || s == StatusInProgress || s == StatusCompleted
}

// Lesson represents an interactive lesson stored in the catalog tables.
// Category-level aggregates are NOT lessons; they live only as synthetic
// "category-<id>" LessonProgress rows.
type Lesson struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Key         string    `json:"key" gorm:"uniqueIndex;not null;size:100"`
	Title       string    `json:"title" gorm:"not null;size:200"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  int       `json:"category_id" gorm:"not null;index"`
	Difficulty  string    `json:"difficulty" gorm:"default:'Beginner';size:20"`
	XPReward    int       `json:"xp_reward" gorm:"default:10"`
	Order       int       `json:"order" gorm:"default:0"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LessonProgress tracks a user's progress on a single lesson. LessonID is
// either a Lesson.Key or a synthetic "category-<N>" aggregate. At most one
// row exists per (user, lesson); writers must go through the upsert in the
// progress service.
type LessonProgress struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID      string     `json:"lesson_id" gorm:"not null;size:100;uniqueIndex:idx_user_lesson"`
	Status        string     `json:"status" gorm:"default:'NOT_STARTED';size:20"`
	Score         int        `json:"score" gorm:"default:0"`
	Attempts      int        `json:"attempts" gorm:"default:0"`
	TimeSpent     int        `json:"time_spent" gorm:"default:0"` // cumulative seconds
	LastAttemptAt time.Time  `json:"last_attempt_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// IsCategory reports whether this row is a category-level aggregate.
func (p *LessonProgress) IsCategory() bool {
	return len(p.LessonID) > 9 && p.LessonID[:9] == "category-"
}

// StudySession aggregates one user's activity for one calendar day. Date is
// always normalized to local midnight; counters only ever increment.
type StudySession struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	UserID           uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_day"`
	Date             time.Time `json:"date" gorm:"not null;uniqueIndex:idx_user_day"`
	Duration         int       `json:"duration" gorm:"default:0"` // minutes
	XPEarned         int       `json:"xp_earned" gorm:"default:0"`
	LessonsCompleted int       `json:"lessons_completed" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}

func (StudySession) TableName() string {
	return "study_sessions"
}
