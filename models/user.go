// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	Avatar      string  `json:"avatar"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsProMember bool    `gorm:"default:false" json:"is_pro_member"`

	// Progression
	Level          int `gorm:"default:1" json:"level"`
	XP             int `gorm:"default:0" json:"xp"`
	Streak         int `gorm:"default:0" json:"streak"`
	LongestStreak  int `gorm:"default:0" json:"longest_streak"`
	TotalStudyTime int `gorm:"default:0" json:"total_study_time"` // minutes
	DailyGoal      int `gorm:"default:5" json:"daily_goal"`       // lessons per day

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Achievements   []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	LessonProgress []LessonProgress  `gorm:"foreignKey:UserID" json:"lesson_progress,omitempty"`
	StudySessions  []StudySession    `gorm:"foreignKey:UserID" json:"study_sessions,omitempty"`
}

type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AchievementID uint      `gorm:"not null;index" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}
