package lexicon

import (
	"time"

	"github.com/example/sozluk/pkg/models"
)

// DayOfYear returns the 1-based ordinal day of t in its own location.
// January 1 is 1 and December 31 is 365 or 366.
func DayOfYear(t time.Time) int {
	return t.YearDay()
}

// SelectDailyWord picks the word of the day: the collection is sorted
// alphabetically and indexed by day-of-year modulo its length, so successive
// days walk the alphabet. It reports false for an empty collection.
func SelectDailyWord(words []models.Word, asOf time.Time) (models.Word, bool) {
	if len(words) == 0 {
		return models.Word{}, false
	}
	sorted := SortAlphabetic(words)
	return sorted[DayOfYear(asOf)%len(sorted)], true
}
