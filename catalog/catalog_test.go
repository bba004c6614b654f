package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogConsistency(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 15)

	seen := make(map[int]bool)
	for _, cat := range cats {
		assert.False(t, seen[cat.ID], "duplicate category id %d", cat.ID)
		seen[cat.ID] = true
		assert.NotEmpty(t, cat.Title)
		assert.Positive(t, cat.TotalLessons)
		assert.Positive(t, cat.XPReward)
	}
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cats := Categories()
	cats[0].Title = "mutated"
	again := Categories()
	assert.NotEqual(t, "mutated", again[0].Title)
}

func TestCategoryByID(t *testing.T) {
	cat, ok := CategoryByID(2)
	assert.True(t, ok)
	assert.Equal(t, "Hiragana Mastery", cat.Title)
	assert.Equal(t, 15, cat.TotalLessons)

	_, ok = CategoryByID(99)
	assert.False(t, ok)
}

func TestProgressIDRoundTrip(t *testing.T) {
	assert.Equal(t, "category-7", ProgressID(7))

	id, ok := ParseProgressID("category-7")
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = ParseProgressID("lesson-hiragana-vowels")
	assert.False(t, ok)

	_, ok = ParseProgressID("category-abc")
	assert.False(t, ok)
}

func TestIsUnlocked(t *testing.T) {
	// First five are always open
	for id := 1; id <= UnlockedByDefault; id++ {
		assert.True(t, IsUnlocked(id, 0))
	}

	// The rest need at least one completed lesson
	assert.False(t, IsUnlocked(6, 0))
	assert.True(t, IsUnlocked(6, 1))
	assert.True(t, IsUnlocked(15, 3))
}

func TestTotalLessons(t *testing.T) {
	total := 0
	for _, cat := range Categories() {
		total += cat.TotalLessons
	}
	assert.Equal(t, total, TotalLessons())
	assert.Positive(t, TotalLessons())
}
