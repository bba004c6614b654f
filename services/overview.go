// services/overview.go - Read-side progress aggregation
package services

import (
	"errors"
	"sort"
	"time"

	"manabi/catalog"
	"manabi/models"

	"gorm.io/gorm"
)

type OverviewUser struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Email          *string   `json:"email,omitempty"`
	Avatar         string    `json:"avatar"`
	Level          int       `json:"level"`
	XP             int       `json:"xp"`
	Streak         int       `json:"streak"`
	LongestStreak  int       `json:"longest_streak"`
	TotalStudyTime int       `json:"total_study_time"`
	JoinDate       time.Time `json:"join_date"`
	IsProMember    bool      `json:"is_pro_member"`
	DailyGoal      int       `json:"daily_goal"`
}

type OverviewTotals struct {
	TotalLessons     int `json:"total_lessons"`
	CompletedLessons int `json:"completed_lessons"`
	TotalXP          int `json:"total_xp"`
	CurrentLevel     int `json:"current_level"`
	XPToNextLevel    int `json:"xp_to_next_level"`
	TotalStudyTime   int `json:"total_study_time"`
}

type OverviewLessons struct {
	CategoryProgress        int                     `json:"category_progress"`
	TotalCategoryLessons    int                     `json:"total_category_lessons"`
	InteractiveProgress     int                     `json:"interactive_progress"`
	TotalInteractiveLessons int                     `json:"total_interactive_lessons"`
	RecentCompletions       []models.LessonProgress `json:"recent_completions"`
}

type DailyStudy struct {
	Date             string `json:"date"`
	XP               int    `json:"xp"`
	Duration         int    `json:"duration"`
	LessonsCompleted int    `json:"lessons_completed"`
}

type OverviewStreaks struct {
	Current      int          `json:"current"`
	Longest      int          `json:"longest"`
	TodayStudied bool         `json:"today_studied"`
	WeeklyData   []DailyStudy `json:"weekly_data"`
}

type RecentAchievement struct {
	models.Achievement
	UnlockedAt time.Time `json:"unlocked_at"`
}

type OverviewAchievements struct {
	Total  int                 `json:"total"`
	Earned int                 `json:"earned"`
	Recent []RecentAchievement `json:"recent"`
}

type TodaySession struct {
	Duration         int `json:"duration"`
	XPEarned         int `json:"xp_earned"`
	LessonsCompleted int `json:"lessons_completed"`
}

type OverviewData struct {
	User              OverviewUser         `json:"user"`
	Overall           OverviewTotals       `json:"overall"`
	Lessons           OverviewLessons      `json:"lessons"`
	Streaks           OverviewStreaks      `json:"streaks"`
	Achievements      OverviewAchievements `json:"achievements"`
	DailyGoalProgress int                  `json:"daily_goal_progress"`
	TodaySession      *TodaySession        `json:"today_session"`
}

// Overview builds the aggregated progress snapshot for the dashboard. Pure
// read; calling it twice without an intervening write yields identical data.
func Overview(db *gorm.DB, userID uint) (*OverviewData, error) {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var progressRows []models.LessonProgress
	if err := db.Where("user_id = ?", userID).Find(&progressRows).Error; err != nil {
		return nil, err
	}

	var sessions []models.StudySession
	if err := db.Where("user_id = ?", userID).
		Order("date DESC").Limit(30).Find(&sessions).Error; err != nil {
		return nil, err
	}

	var earned []models.UserAchievement
	if err := db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").Find(&earned).Error; err != nil {
		return nil, err
	}

	var totalAchievements int64
	if err := db.Model(&models.Achievement{}).
		Where("is_active = ?", true).Count(&totalAchievements).Error; err != nil {
		return nil, err
	}

	var totalInteractive int64
	if err := db.Model(&models.Lesson{}).
		Where("is_active = ?", true).Count(&totalInteractive).Error; err != nil {
		return nil, err
	}

	categoryCompleted := 0
	interactiveCompleted := 0
	recentCompletions := []models.LessonProgress{}
	for _, row := range progressRows {
		if row.IsCategory() {
			categoryCompleted += row.Score
		} else if row.Status == models.StatusCompleted {
			interactiveCompleted++
		}
		if row.CompletedAt != nil {
			recentCompletions = append(recentCompletions, row)
		}
	}
	sort.Slice(recentCompletions, func(i, j int) bool {
		return recentCompletions[i].CompletedAt.After(*recentCompletions[j].CompletedAt)
	})
	if len(recentCompletions) > 5 {
		recentCompletions = recentCompletions[:5]
	}

	today := StartOfDay(time.Now())
	sessionDates := make([]time.Time, 0, len(sessions))
	var todaySession *models.StudySession
	for i := range sessions {
		sessionDates = append(sessionDates, sessions[i].Date)
		if sessions[i].Date.Equal(today) {
			todaySession = &sessions[i]
		}
	}
	currentStreak := StreakFromSessions(sessionDates, today)

	weekly := make([]DailyStudy, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		entry := DailyStudy{Date: day.Format("2006-01-02")}
		for _, s := range sessions {
			if s.Date.Equal(day) {
				entry.XP = s.XPEarned
				entry.Duration = s.Duration
				entry.LessonsCompleted = s.LessonsCompleted
				break
			}
		}
		weekly = append(weekly, entry)
	}

	recent := make([]RecentAchievement, 0, 3)
	for i, ua := range earned {
		if i >= 3 {
			break
		}
		recent = append(recent, RecentAchievement{
			Achievement: ua.Achievement,
			UnlockedAt:  ua.UnlockedAt,
		})
	}

	totalLessons := catalog.TotalLessons() + int(totalInteractive)

	data := &OverviewData{
		User: OverviewUser{
			ID:             user.ID,
			Username:       user.Username,
			DisplayName:    user.DisplayName,
			Email:          user.Email,
			Avatar:         user.Avatar,
			Level:          user.Level,
			XP:             user.XP,
			Streak:         currentStreak,
			LongestStreak:  user.LongestStreak,
			TotalStudyTime: user.TotalStudyTime,
			JoinDate:       user.CreatedAt,
			IsProMember:    user.IsProMember,
			DailyGoal:      user.DailyGoal,
		},
		Overall: OverviewTotals{
			TotalLessons:     totalLessons,
			CompletedLessons: categoryCompleted + interactiveCompleted,
			TotalXP:          user.XP,
			CurrentLevel:     user.Level,
			XPToNextLevel:    XPToNextLevel(user.Level, user.XP),
			TotalStudyTime:   user.TotalStudyTime,
		},
		Lessons: OverviewLessons{
			CategoryProgress:        categoryCompleted,
			TotalCategoryLessons:    catalog.TotalLessons(),
			InteractiveProgress:     interactiveCompleted,
			TotalInteractiveLessons: int(totalInteractive),
			RecentCompletions:       recentCompletions,
		},
		Streaks: OverviewStreaks{
			Current:      currentStreak,
			Longest:      user.LongestStreak,
			TodayStudied: todaySession != nil,
			WeeklyData:   weekly,
		},
		Achievements: OverviewAchievements{
			Total:  int(totalAchievements),
			Earned: len(earned),
			Recent: recent,
		},
	}

	if todaySession != nil {
		data.DailyGoalProgress = DailyGoalPercent(todaySession.LessonsCompleted, user.DailyGoal)
		data.TodaySession = &TodaySession{
			Duration:         todaySession.Duration,
			XPEarned:         todaySession.XPEarned,
			LessonsCompleted: todaySession.LessonsCompleted,
		}
	}

	return data, nil
}
