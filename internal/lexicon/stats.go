package lexicon

import "github.com/example/sozluk/pkg/models"

// ComputeStats counts words per book and per category.
func ComputeStats(words []models.Word) models.Stats {
	stats := models.Stats{
		TotalWords:     len(words),
		BookCounts:     make(map[string]int),
		CategoryCounts: make(map[string]int),
	}
	for _, w := range words {
		if w.Book != "" {
			stats.BookCounts[w.Book]++
		}
		if w.HasCategory() {
			stats.CategoryCounts[*w.Category]++
		}
	}
	return stats
}
