// models/achievement.go
package models

import "time"

type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"` // Streak, Level, Lessons, Dedication
	Tier        string `gorm:"not null" json:"tier"`           // Beginner, Intermediate, Advanced, Elite
	Icon        string `json:"icon"`

	// Unlock threshold, interpreted per category (days, level, lessons, minutes).
	Threshold int `gorm:"default:0" json:"threshold"`

	// Rewards
	XPReward int `gorm:"default:0" json:"xp_reward"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
