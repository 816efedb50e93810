package lexicon

import (
	"sort"

	"github.com/example/sozluk/pkg/models"
)

// MaxRelated caps a derived related-word list.
const MaxRelated = 6

// Seed offsets keep each tier's ordering independent of the others.
const (
	offsetSameCategory  = 1
	offsetSameBook      = 2
	offsetCrossCategory = 3
	offsetFill          = 4
)

// SeededRandom maps (seed, index) to a reproducible value in [0, 1).
// It is two rounds of the splitmix64 finalizer, so nearby inputs spread evenly.
func SeededRandom(seed, index int64) float64 {
	z := splitmix64(splitmix64(uint64(seed)) ^ uint64(index))
	return float64(z>>11) / float64(uint64(1)<<53)
}

func splitmix64(z uint64) uint64 {
	z += 0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// tier is one candidate pool of the related-word heuristic.
type tier struct {
	offset int64
	limit  int
	match  func(w models.Word) bool
}

// SelectRelated returns the words related to word.
//
// Curated relations win outright: they are resolved by id in order. Dangling
// ids are dropped, and so is the word's own id, so the result never contains
// word itself. Without them, candidates are drawn from four tiers
// (same category, same book, same category in another book, anything else),
// each shuffled by a key seeded on word.ID, up to MaxRelated entries.
func SelectRelated(word models.Word, words []models.Word) []models.Word {
	if len(word.Relations) > 0 {
		return resolveRelations(word, words)
	}

	tiers := []tier{
		{offsetSameCategory, 3, func(w models.Word) bool {
			return word.SameCategory(w)
		}},
		{offsetSameBook, 2, func(w models.Word) bool {
			return w.Book == word.Book && !word.SameCategory(w)
		}},
		{offsetCrossCategory, 1, func(w models.Word) bool {
			return w.Book != word.Book && word.SameCategory(w)
		}},
	}

	selected := make(map[int]bool)
	result := make([]models.Word, 0, MaxRelated)

	take := func(candidates []models.Word, offset int64, limit int) {
		for _, c := range seededOrder(candidates, int64(word.ID), offset) {
			if limit <= 0 || len(result) >= MaxRelated {
				return
			}
			if selected[c.ID] {
				continue
			}
			selected[c.ID] = true
			result = append(result, c)
			limit--
		}
	}

	for _, t := range tiers {
		var pool []models.Word
		for _, w := range words {
			if w.ID != word.ID && t.match(w) {
				pool = append(pool, w)
			}
		}
		take(pool, t.offset, t.limit)
	}

	if len(result) < MaxRelated {
		var rest []models.Word
		for _, w := range words {
			if w.ID != word.ID && !selected[w.ID] {
				rest = append(rest, w)
			}
		}
		take(rest, offsetFill, MaxRelated-len(result))
	}

	return result
}

func resolveRelations(word models.Word, words []models.Word) []models.Word {
	byID := make(map[int]models.Word, len(words))
	for _, w := range words {
		byID[w.ID] = w
	}

	result := make([]models.Word, 0, len(word.Relations))
	for _, id := range word.Relations {
		if id == word.ID {
			continue
		}
		if w, ok := byID[id]; ok {
			result = append(result, w)
		}
	}
	return result
}

// seededOrder returns a copy of candidates sorted by SeededRandom(seed, id+offset).
func seededOrder(candidates []models.Word, seed, offset int64) []models.Word {
	ordered := make([]models.Word, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		ki := SeededRandom(seed, int64(ordered[i].ID)+offset)
		kj := SeededRandom(seed, int64(ordered[j].ID)+offset)
		if ki != kj {
			return ki < kj
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}
