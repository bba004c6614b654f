// services/progression.go - Pure progression arithmetic
//
// Every XP, level, streak, and completion rule lives here and only here.
// Handlers and the transactional progress service call these; none of them
// carry their own copies of the arithmetic.
package services

import (
	"sort"
	"time"

	"manabi/models"
)

// XPPerLevel is the amount of XP that separates consecutive levels.
const XPPerLevel = 500

// LevelForXP derives a user's level from cumulative XP. XP exactly on a
// multiple of 500 lands on the boundary level (500 XP -> level 2).
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// XPToNextLevel is how much XP the user still needs to reach the next level.
func XPToNextLevel(level, xp int) int {
	return level*XPPerLevel - xp
}

// ClampCompleted bounds a submitted completed-lesson count to [0, total].
func ClampCompleted(completed, total int) int {
	if completed < 0 {
		return 0
	}
	if completed > total {
		return total
	}
	return completed
}

// StatusForCount derives a progress status from a clamped completion count.
func StatusForCount(completed, total int) string {
	switch {
	case total > 0 && completed >= total:
		return models.StatusCompleted
	case completed > 0:
		return models.StatusInProgress
	default:
		return models.StatusNotStarted
	}
}

// NextStreak applies the streak transition rule for an XP-awarding event
// happening today.
//
//   - A session already recorded today leaves the streak unchanged, so a
//     second award on the same day never double-counts.
//   - A session yesterday extends the chain by one.
//   - Anything else (never studied, or a gap of two or more days) starts a
//     fresh streak of 1.
func NextStreak(current int, hasToday, hasYesterday bool) int {
	if hasToday {
		if current < 1 {
			return 1
		}
		return current
	}
	if hasYesterday {
		return current + 1
	}
	return 1
}

// StartOfDay normalizes t to local midnight. Study sessions are keyed by
// this value.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StreakFromSessions recomputes the current streak by walking backwards from
// today (or yesterday, when today has no session yet) over the given session
// dates. Used by the read-side overview so a streak that lapsed overnight
// displays correctly without a write.
func StreakFromSessions(dates []time.Time, today time.Time) int {
	today = StartOfDay(today)

	seen := make(map[time.Time]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		// The driver may return stored midnights rendered in UTC; re-express
		// them in the caller's zone before truncating.
		day := StartOfDay(d.In(today.Location()))
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	if len(days) == 0 {
		return 0
	}

	cursor := today
	if !seen[today] {
		cursor = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, day := range days {
		if day.After(cursor) {
			continue
		}
		if day.Equal(cursor) {
			streak++
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}
		break
	}
	return streak
}

// DailyGoalPercent reports today's lessons against the user's daily goal.
// Values at or above 100 mean the goal was reached.
func DailyGoalPercent(lessonsToday, dailyGoal int) int {
	if dailyGoal <= 0 {
		return 0
	}
	return lessonsToday * 100 / dailyGoal
}

// ProgressPercent is a rounded completion percentage.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(float64(completed)/float64(total)*100 + 0.5)
}
