package lexicon

import (
	"sort"
	"strings"

	"github.com/example/sozluk/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collators and casers keep internal buffers and are not safe for concurrent
// use, so each call builds its own.
func newCollator() *collate.Collator {
	return collate.New(language.Turkish, collate.Loose)
}

// CompareWords orders two headwords under Turkish collation at base strength:
// case and circumflexes are ignored, Turkish letters such as ç and ş are not.
func CompareWords(a, b string) int {
	return newCollator().CompareString(a, b)
}

// SortAlphabetic returns a copy of words ordered by headword under Turkish
// collation. Collation ties fall back to the raw headword and then the id so
// the order never depends on the input order.
func SortAlphabetic(words []models.Word) []models.Word {
	sorted := make([]models.Word, len(words))
	copy(sorted, words)

	c := newCollator()
	sort.SliceStable(sorted, func(i, j int) bool {
		if r := c.CompareString(sorted[i].Word, sorted[j].Word); r != 0 {
			return r < 0
		}
		if sorted[i].Word != sorted[j].Word {
			return sorted[i].Word < sorted[j].Word
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// SortStrings orders names (books, categories) under Turkish collation.
func SortStrings(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	c := newCollator()
	sort.SliceStable(sorted, func(i, j int) bool {
		if r := c.CompareString(sorted[i], sorted[j]); r != 0 {
			return r < 0
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}

// shuffleKey is the multiplicative hash behind the browse page's "random" order.
func shuffleKey(id int) int64 {
	return (int64(id) * 2654435761) % 2147483647
}

// SortShuffled returns a copy of words in a mixed but repeatable order.
func SortShuffled(words []models.Word) []models.Word {
	sorted := make([]models.Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := shuffleKey(sorted[i].ID), shuffleKey(sorted[j].ID)
		if ki != kj {
			return ki < kj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// Criteria narrows a word listing.
type Criteria struct {
	Query    string
	Book     string
	Category string
}

// Empty reports whether no criterion is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Query) == "" && c.Book == "" && c.Category == ""
}

// Filter keeps the words whose headword or meaning contains the query
// (Turkish case folding) and that match the book and category, when given.
func Filter(words []models.Word, c Criteria) []models.Word {
	lower := cases.Lower(language.Turkish)
	query := lower.String(strings.TrimSpace(c.Query))

	result := make([]models.Word, 0, len(words))
	for _, w := range words {
		if c.Book != "" && w.Book != c.Book {
			continue
		}
		if c.Category != "" && w.CategoryName() != c.Category {
			continue
		}
		if query != "" &&
			!strings.Contains(lower.String(w.Word), query) &&
			!strings.Contains(lower.String(w.Meaning), query) {
			continue
		}
		result = append(result, w)
	}
	return result
}

// SortedBooks returns the distinct non-empty books in collation order.
func SortedBooks(words []models.Word) []string {
	seen := make(map[string]bool)
	var books []string
	for _, w := range words {
		if w.Book == "" || seen[w.Book] {
			continue
		}
		seen[w.Book] = true
		books = append(books, w.Book)
	}
	return SortStrings(books)
}

// SortedCategories returns the distinct categories in collation order.
func SortedCategories(words []models.Word) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, w := range words {
		if !w.HasCategory() || seen[*w.Category] {
			continue
		}
		seen[*w.Category] = true
		categories = append(categories, *w.Category)
	}
	return SortStrings(categories)
}
