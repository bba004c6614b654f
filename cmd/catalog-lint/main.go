// catalog-lint checks the static category catalog for inconsistencies that
// would corrupt progress bookkeeping: duplicate ids, non-positive lesson
// counts, or missing rewards.
package main

import (
	"fmt"
	"os"

	"manabi/catalog"
)

func main() {
	cats := catalog.Categories()
	if len(cats) == 0 {
		fmt.Println("catalog is empty")
		os.Exit(1)
	}

	exitCode := 0
	seen := make(map[int]string, len(cats))
	for _, cat := range cats {
		if prev, dup := seen[cat.ID]; dup {
			fmt.Printf("category %d (%q): id already used by %q\n", cat.ID, cat.Title, prev)
			exitCode = 1
		}
		seen[cat.ID] = cat.Title

		if cat.Title == "" {
			fmt.Printf("category %d: empty title\n", cat.ID)
			exitCode = 1
		}
		if cat.TotalLessons <= 0 {
			fmt.Printf("category %d (%q): total_lessons must be positive, got %d\n", cat.ID, cat.Title, cat.TotalLessons)
			exitCode = 1
		}
		if cat.XPReward <= 0 {
			fmt.Printf("category %d (%q): xp_reward must be positive, got %d\n", cat.ID, cat.Title, cat.XPReward)
			exitCode = 1
		}
		switch cat.Difficulty {
		case "Beginner", "Intermediate", "Advanced":
		default:
			fmt.Printf("category %d (%q): unknown difficulty %q\n", cat.ID, cat.Title, cat.Difficulty)
			exitCode = 1
		}
	}

	if exitCode == 0 {
		fmt.Printf("catalog OK: %d categories, %d lessons total\n", len(cats), catalog.TotalLessons())
	}
	os.Exit(exitCode)
}
