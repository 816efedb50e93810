package lexicon

import (
	"testing"
	"time"

	"github.com/example/sozluk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cat(s string) *string { return &s }

func headwords(words []models.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Word
	}
	return out
}

func ids(words []models.Word) []int {
	out := make([]int, len(words))
	for i, w := range words {
		out[i] = w.ID
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 1, DayOfYear(date(2025, time.January, 1)))
	assert.Equal(t, 365, DayOfYear(date(2025, time.December, 31)))
	assert.Equal(t, 366, DayOfYear(date(2024, time.December, 31)))
	assert.Equal(t, 60, DayOfYear(date(2023, time.March, 1)))
	assert.Equal(t, 61, DayOfYear(date(2024, time.March, 1)), "leap day shifts later dates")
}

func TestSelectDailyWordCyclesThroughAlphabet(t *testing.T) {
	words := []models.Word{
		{ID: 2, Word: "Behemehal"},
		{ID: 1, Word: "Bedâhet"},
		{ID: 6, Word: "Teşrif"},
	}

	cases := []struct {
		day  time.Time
		want string
	}{
		{date(2025, time.January, 3), "Bedâhet"},   // 3 mod 3 = 0
		{date(2025, time.January, 1), "Behemehal"}, // 1 mod 3 = 1
		{date(2025, time.January, 2), "Teşrif"},    // 2 mod 3 = 2
		{date(2025, time.January, 4), "Behemehal"},
	}
	for _, tc := range cases {
		got, ok := SelectDailyWord(words, tc.day)
		require.True(t, ok)
		assert.Equal(t, tc.want, got.Word, tc.day.Format("2006-01-02"))
	}
}

func TestSelectDailyWordIsDeterministic(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "Sükût"}, {ID: 2, Word: "Münhani"}, {ID: 3, Word: "İnbisat"},
		{ID: 4, Word: "Bermutat"}, {ID: 5, Word: "Müheyyiç"},
	}
	reversed := make([]models.Word, len(words))
	for i := range words {
		reversed[len(words)-1-i] = words[i]
	}

	day := date(2026, time.October, 14)
	first, ok := SelectDailyWord(words, day)
	require.True(t, ok)
	second, _ := SelectDailyWord(words, day)
	fromReversed, _ := SelectDailyWord(reversed, day)

	assert.Equal(t, first, second)
	assert.Equal(t, first, fromReversed, "input order must not matter")
	assert.Equal(t, "Münhani", words[1].Word, "input is not reordered in place")
}

func TestSelectDailyWordEmpty(t *testing.T) {
	_, ok := SelectDailyWord(nil, time.Now())
	assert.False(t, ok)
}

func TestSortAlphabeticTurkish(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "iyi"},
		{ID: 2, Word: "Dünya"},
		{ID: 3, Word: "ılık"},
		{ID: 4, Word: "Çay"},
		{ID: 5, Word: "Cam"},
	}
	assert.Equal(t, []string{"Cam", "Çay", "Dünya", "ılık", "iyi"}, headwords(SortAlphabetic(words)))
}

func TestSortAlphabeticIgnoresCase(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "behemehal"},
		{ID: 2, Word: "Bedâhet"},
		{ID: 3, Word: "Bermutat"},
	}
	assert.Equal(t, []string{"Bedâhet", "behemehal", "Bermutat"}, headwords(SortAlphabetic(words)))
}

func TestSortShuffledIsStable(t *testing.T) {
	words := []models.Word{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	first := ids(SortShuffled(words))
	assert.Equal(t, first, ids(SortShuffled(words)))
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, first)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(words))
}

func TestFilter(t *testing.T) {
	words := []models.Word{
		{ID: 1, Word: "İnbisat", Meaning: "Genişleme", Book: "Beş Şehir"},
		{ID: 2, Word: "Sükût", Meaning: "Susma, sessizlik", Book: "Huzur", Category: cat("duygu")},
		{ID: 3, Word: "Behemehal", Meaning: "Her halde, mutlaka", Book: "Huzur"},
	}

	assert.Equal(t, []int{1}, ids(Filter(words, Criteria{Query: "inbi"})))
	assert.Equal(t, []int{2}, ids(Filter(words, Criteria{Query: "SESSİZ"})))
	assert.Equal(t, []int{2, 3}, ids(Filter(words, Criteria{Book: "Huzur"})))
	assert.Equal(t, []int{2}, ids(Filter(words, Criteria{Category: "duygu"})))
	assert.Equal(t, []int{3}, ids(Filter(words, Criteria{Query: "mutlak", Book: "Huzur"})))
	assert.Len(t, Filter(words, Criteria{}), 3)
	assert.Empty(t, Filter(words, Criteria{Query: "yok"}))
}

func TestSortedBooksAndCategories(t *testing.T) {
	words := []models.Word{
		{ID: 1, Book: "Saatleri Ayarlama Enstitüsü", Category: cat("zaman")},
		{ID: 2, Book: "Huzur"},
		{ID: 3, Book: "Beş Şehir", Category: cat("mekân")},
		{ID: 4, Book: "Huzur", Category: cat("zaman")},
		{ID: 5, Book: ""},
	}
	assert.Equal(t, []string{"Beş Şehir", "Huzur", "Saatleri Ayarlama Enstitüsü"}, SortedBooks(words))
	assert.Equal(t, []string{"mekân", "zaman"}, SortedCategories(words))
}

func TestComputeStats(t *testing.T) {
	words := []models.Word{
		{ID: 1, Book: "Huzur", Category: cat("duygu")},
		{ID: 2, Book: "Huzur"},
		{ID: 3, Book: "Beş Şehir", Category: cat("duygu")},
	}
	stats := ComputeStats(words)
	assert.Equal(t, 3, stats.TotalWords)
	assert.Equal(t, map[string]int{"Huzur": 2, "Beş Şehir": 1}, stats.BookCounts)
	assert.Equal(t, map[string]int{"duygu": 2}, stats.CategoryCounts)

	empty := ComputeStats(nil)
	assert.Zero(t, empty.TotalWords)
	assert.NotNil(t, empty.BookCounts)
}
