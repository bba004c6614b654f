// catalog/catalog.go - Static lesson category catalog
//
// The category list is the single source of truth for category metadata.
// Every service and handler reads it from here; nothing duplicates it inline.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Category is a group of lessons with an aggregate progress record stored
// under the synthetic lesson id "category-<ID>".
type Category struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	TotalLessons int    `json:"total_lessons"`
	Difficulty   string `json:"difficulty"`
	XPReward     int    `json:"xp_reward"`
}

// UnlockedByDefault is the number of leading categories open to every user.
const UnlockedByDefault = 5

var categories = []Category{
	{ID: 1, Title: "Japanese Greetings", TotalLessons: 10, Difficulty: "Beginner", XPReward: 100},
	{ID: 2, Title: "Hiragana Mastery", TotalLessons: 15, Difficulty: "Beginner", XPReward: 150},
	{ID: 3, Title: "Na-Adjectives", TotalLessons: 8, Difficulty: "Beginner", XPReward: 80},
	{ID: 4, Title: "I-Adjectives", TotalLessons: 8, Difficulty: "Beginner", XPReward: 80},
	{ID: 5, Title: "Body Parts", TotalLessons: 6, Difficulty: "Beginner", XPReward: 60},
	{ID: 6, Title: "Basic Verbs", TotalLessons: 12, Difficulty: "Beginner", XPReward: 120},
	{ID: 7, Title: "Verb Conjugation", TotalLessons: 15, Difficulty: "Intermediate", XPReward: 200},
	{ID: 8, Title: "Particles Mastery", TotalLessons: 18, Difficulty: "Intermediate", XPReward: 250},
	{ID: 9, Title: "Colors in Japanese", TotalLessons: 5, Difficulty: "Beginner", XPReward: 50},
	{ID: 10, Title: "Family Members", TotalLessons: 6, Difficulty: "Beginner", XPReward: 60},
	{ID: 11, Title: "Numbers & Kanji", TotalLessons: 10, Difficulty: "Intermediate", XPReward: 150},
	{ID: 12, Title: "Days & Dates", TotalLessons: 8, Difficulty: "Beginner", XPReward: 80},
	{ID: 13, Title: "Food Vocabulary", TotalLessons: 7, Difficulty: "Beginner", XPReward: 70},
	{ID: 14, Title: "Daily Expressions", TotalLessons: 10, Difficulty: "Intermediate", XPReward: 130},
	{ID: 15, Title: "Existence (Aru/Iru)", TotalLessons: 8, Difficulty: "Intermediate", XPReward: 120},
}

// Categories returns the full category list in display order. The returned
// slice is a copy; callers may not mutate the catalog.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category by its numeric id.
func CategoryByID(id int) (Category, bool) {
	for _, cat := range categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// TotalLessons returns the number of lessons across all categories.
func TotalLessons() int {
	total := 0
	for _, cat := range categories {
		total += cat.TotalLessons
	}
	return total
}

// ProgressID returns the synthetic lesson id that stores a category's
// aggregate progress.
func ProgressID(categoryID int) string {
	return fmt.Sprintf("category-%d", categoryID)
}

// ParseProgressID extracts the category id from a synthetic progress id.
func ParseProgressID(lessonID string) (int, bool) {
	raw, ok := strings.CutPrefix(lessonID, "category-")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// IsUnlocked reports whether a category is available to the user. The first
// UnlockedByDefault categories are always open; the rest unlock once the
// user has completed at least one lesson in them.
func IsUnlocked(categoryID, completedLessons int) bool {
	return categoryID <= UnlockedByDefault || completedLessons > 0
}
