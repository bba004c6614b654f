package services

import (
	"testing"
	"time"

	"manabi/models"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	assert.Equal(t, 1, LevelForXP(0))
	assert.Equal(t, 1, LevelForXP(499))
	assert.Equal(t, 2, LevelForXP(500))
	assert.Equal(t, 2, LevelForXP(999))
	assert.Equal(t, 3, LevelForXP(1000))
	assert.Equal(t, 11, LevelForXP(5000))

	// Negative XP never occurs through the service, but the derivation
	// stays total.
	assert.Equal(t, 1, LevelForXP(-10))
}

func TestLevelForXPAwardScenario(t *testing.T) {
	// xp=450 awarded 60 -> 510, level 2, leveled up
	before := LevelForXP(450)
	after := LevelForXP(450 + 60)
	assert.Equal(t, 1, before)
	assert.Equal(t, 2, after)
	assert.True(t, after > before)
}

func TestXPToNextLevel(t *testing.T) {
	assert.Equal(t, 500, XPToNextLevel(1, 0))
	assert.Equal(t, 50, XPToNextLevel(1, 450))
	assert.Equal(t, 490, XPToNextLevel(2, 510))
}

func TestClampCompleted(t *testing.T) {
	assert.Equal(t, 0, ClampCompleted(-3, 10))
	assert.Equal(t, 0, ClampCompleted(0, 10))
	assert.Equal(t, 7, ClampCompleted(7, 10))
	assert.Equal(t, 10, ClampCompleted(10, 10))
	assert.Equal(t, 10, ClampCompleted(12, 10))
}

func TestStatusForCount(t *testing.T) {
	assert.Equal(t, models.StatusNotStarted, StatusForCount(0, 10))
	assert.Equal(t, models.StatusInProgress, StatusForCount(1, 10))
	assert.Equal(t, models.StatusInProgress, StatusForCount(9, 10))
	assert.Equal(t, models.StatusCompleted, StatusForCount(10, 10))

	// A zero-lesson category can never be completed
	assert.Equal(t, models.StatusNotStarted, StatusForCount(0, 0))
}

func TestNextStreakFreshStart(t *testing.T) {
	// Never studied before
	assert.Equal(t, 1, NextStreak(0, false, false))

	// Last session two or more days ago
	assert.Equal(t, 1, NextStreak(5, false, false))
}

func TestNextStreakContinuation(t *testing.T) {
	// Studied yesterday, first award today
	assert.Equal(t, 6, NextStreak(5, false, true))
	assert.Equal(t, 2, NextStreak(1, false, true))
}

func TestNextStreakSameDayReentry(t *testing.T) {
	// Second award on the same day leaves the streak alone, including when
	// yesterday also had a session.
	assert.Equal(t, 5, NextStreak(5, true, false))
	assert.Equal(t, 5, NextStreak(5, true, true))

	// Today's session exists but the stored streak was never set
	assert.Equal(t, 1, NextStreak(0, true, false))
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 3, 15, 17, 42, 31, 999, time.Local)
	day := StartOfDay(ts)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), day)
	assert.Equal(t, day, StartOfDay(day))
}

func TestStreakFromSessions(t *testing.T) {
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	assert.Equal(t, 0, StreakFromSessions(nil, today))

	// Today plus the two preceding days
	assert.Equal(t, 3, StreakFromSessions([]time.Time{day(0), day(-1), day(-2)}, today))

	// No session today yet: yesterday's chain still counts
	assert.Equal(t, 2, StreakFromSessions([]time.Time{day(-1), day(-2)}, today))

	// Gap breaks the chain
	assert.Equal(t, 1, StreakFromSessions([]time.Time{day(0), day(-2), day(-3)}, today))

	// Last session two days ago: streak has lapsed
	assert.Equal(t, 0, StreakFromSessions([]time.Time{day(-2), day(-3)}, today))

	// Duplicate same-day entries and unsorted input
	assert.Equal(t, 2, StreakFromSessions([]time.Time{day(-1), day(0), day(0)}, today))
}

func TestDailyGoalPercent(t *testing.T) {
	assert.Equal(t, 0, DailyGoalPercent(0, 5))
	assert.Equal(t, 60, DailyGoalPercent(3, 5))
	assert.Equal(t, 100, DailyGoalPercent(5, 5))
	assert.GreaterOrEqual(t, DailyGoalPercent(5, 5), 100)
	assert.Equal(t, 140, DailyGoalPercent(7, 5))
	assert.Equal(t, 0, DailyGoalPercent(3, 0))
}

func TestProgressPercent(t *testing.T) {
	assert.Equal(t, 0, ProgressPercent(0, 10))
	assert.Equal(t, 50, ProgressPercent(5, 10))
	assert.Equal(t, 100, ProgressPercent(10, 10))
	assert.Equal(t, 33, ProgressPercent(1, 3))
	assert.Equal(t, 67, ProgressPercent(2, 3))
	assert.Equal(t, 0, ProgressPercent(3, 0))
}
