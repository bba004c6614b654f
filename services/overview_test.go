package services

import (
	"testing"

	"manabi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewReadIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "akira", 0)
	lesson := createTestLesson(t, db, "lesson-hiragana-vowels", 25)

	_, err := SaveLessonProgress(db, user.ID, LessonProgressInput{
		LessonID:  lesson.Key,
		Status:    models.StatusCompleted,
		Score:     intp(90),
		TimeSpent: intp(300),
	})
	require.NoError(t, err)

	// Category 9 has 5 lessons and a 50 XP reward.
	_, err = SaveCategoryProgress(db, user.ID, 9, 5, "complete")
	require.NoError(t, err)

	first, err := Overview(db, user.ID)
	require.NoError(t, err)
	second, err := Overview(db, user.ID)
	require.NoError(t, err)

	// A pure read: two calls without an intervening write agree exactly.
	assert.Equal(t, first, second)

	assert.Equal(t, 75, first.User.XP)
	assert.Equal(t, 1, first.Streaks.Current)
	assert.True(t, first.Streaks.TodayStudied)
	assert.Len(t, first.Streaks.WeeklyData, 7)

	assert.Equal(t, 5, first.Lessons.CategoryProgress)
	assert.Equal(t, 1, first.Lessons.InteractiveProgress)
	assert.Equal(t, 1, first.Lessons.TotalInteractiveLessons)
	assert.Equal(t, 6, first.Overall.CompletedLessons)
	assert.Len(t, first.Lessons.RecentCompletions, 2)

	require.NotNil(t, first.TodaySession)
	assert.Equal(t, 2, first.TodaySession.LessonsCompleted)
	assert.Equal(t, 40, first.DailyGoalProgress)
}

func TestOverviewUnknownUser(t *testing.T) {
	db := newTestDB(t)

	_, err := Overview(db, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
