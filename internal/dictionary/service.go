package dictionary

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/pkg/models"
	"github.com/sirupsen/logrus"
)

// FrontPageSize is how many words the unfiltered listing shows.
const FrontPageSize = 8

// Sort orders for Words.
const (
	SortRandom     = "random"
	SortAlphabetic = "alphabetic"
)

// Repository is the word storage the service needs.
type Repository interface {
	List(ctx context.Context) ([]models.Word, error)
	Get(ctx context.Context, id int) (models.Word, error)
	Popular(ctx context.Context, limit int) ([]models.PopularWord, error)
	Create(ctx context.Context, in models.WordInput) (models.Word, error)
	Update(ctx context.Context, id int, in models.WordInput) (models.Word, error)
	Delete(ctx context.Context, id int) error
	RecordView(ctx context.Context, id int) error
}

// Catalog lists distinct books and categories.
type Catalog interface {
	Books(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
}

// Statistics aggregates the collection.
type Statistics interface {
	Stats(ctx context.Context) (models.Stats, error)
}

// Options tune a Service.
type Options struct {
	// Location decides which calendar day "today" is.
	Location *time.Location
	// Fallback is served on read paths while storage is unavailable.
	Fallback []models.Word
	// Now overrides the clock.
	Now func() time.Time
}

// Query describes a word listing.
type Query struct {
	lexicon.Criteria
	Sort string
	All  bool
}

// Service is the dictionary's application layer.
type Service struct {
	words    Repository
	catalog  Catalog
	stats    Statistics
	fallback []models.Word
	loc      *time.Location
	now      func() time.Time
}

// New creates a new service instance
func New(words Repository, catalog Catalog, stats Statistics, opts Options) *Service {
	s := &Service{
		words:    words,
		catalog:  catalog,
		stats:    stats,
		fallback: opts.Fallback,
		loc:      opts.Location,
		now:      opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// useFallback reports whether err should be answered from the built-in dataset.
func (s *Service) useFallback(err error, op string) bool {
	if s.fallback == nil || !errors.Is(err, models.ErrStorageUnavailable) {
		return false
	}
	logrus.WithError(err).WithField("op", op).Warn("Storage unavailable, serving built-in dictionary")
	return true
}

func (s *Service) all(ctx context.Context) ([]models.Word, error) {
	words, err := s.words.List(ctx)
	if err != nil {
		if s.useFallback(err, "list") {
			return s.fallbackWords(), nil
		}
		return nil, err
	}
	return words, nil
}

func (s *Service) fallbackWords() []models.Word {
	words := make([]models.Word, len(s.fallback))
	copy(words, s.fallback)
	return words
}

// Words returns the listing described by q. Without criteria, and unless
// q.All is set, only the front page is returned.
func (s *Service) Words(ctx context.Context, q Query) ([]models.Word, error) {
	sortBy := q.Sort
	if sortBy == "" {
		sortBy = SortRandom
	}
	if sortBy != SortRandom && sortBy != SortAlphabetic {
		return nil, &models.ValidationError{Field: "sort", Message: fmt.Sprintf("unknown sort %q", q.Sort)}
	}

	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	result := lexicon.Filter(words, q.Criteria)
	if sortBy == SortAlphabetic {
		result = lexicon.SortAlphabetic(result)
	} else {
		result = lexicon.SortShuffled(result)
	}

	if q.Criteria.Empty() && !q.All && len(result) > FrontPageSize {
		result = result[:FrontPageSize]
	}
	return result, nil
}

// Word returns a single word.
func (s *Service) Word(ctx context.Context, id int) (models.Word, error) {
	w, err := s.words.Get(ctx, id)
	if err != nil && s.useFallback(err, "get") {
		return findWord(s.fallback, id)
	}
	return w, err
}

// Related returns the words related to id.
func (s *Service) Related(ctx context.Context, id int) ([]models.Word, error) {
	words, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	w, err := findWord(words, id)
	if err != nil {
		return nil, err
	}
	return lexicon.SelectRelated(w, words), nil
}

// Daily returns the word of the day for asOf, read in the service's location.
// A word flagged isWordOfDay overrides the rotation; the lowest such id wins.
func (s *Service) Daily(ctx context.Context, asOf time.Time) (models.Word, error) {
	words, err := s.all(ctx)
	if err != nil {
		return models.Word{}, err
	}

	var flagged *models.Word
	for i := range words {
		if words[i].IsWordOfDay && (flagged == nil || words[i].ID < flagged.ID) {
			flagged = &words[i]
		}
	}
	if flagged != nil {
		return *flagged, nil
	}

	w, ok := lexicon.SelectDailyWord(words, asOf.In(s.loc))
	if !ok {
		return models.Word{}, fmt.Errorf("no word of the day: %w", models.ErrNotFound)
	}
	return w, nil
}

// ParseDate reads a YYYY-MM-DD calendar date in the service's location.
func (s *Service) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, s.loc)
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: "date", Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value)}
	}
	return t, nil
}

// Today is Daily for the current time.
func (s *Service) Today(ctx context.Context) (models.Word, error) {
	return s.Daily(ctx, s.now())
}

// Random returns an arbitrary word for the discover tab.
func (s *Service) Random(ctx context.Context) (models.Word, error) {
	words, err := s.all(ctx)
	if err != nil {
		return models.Word{}, err
	}
	if len(words) == 0 {
		return models.Word{}, fmt.Errorf("empty dictionary: %w", models.ErrNotFound)
	}
	return words[rand.Intn(len(words))], nil
}

// Books returns the distinct books in Turkish collation order.
func (s *Service) Books(ctx context.Context) ([]string, error) {
	books, err := s.catalog.Books(ctx)
	if err != nil {
		if s.useFallback(err, "books") {
			return lexicon.SortedBooks(s.fallback), nil
		}
		return nil, err
	}
	return lexicon.SortStrings(books), nil
}

// Categories returns the distinct categories in Turkish collation order.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.catalog.Categories(ctx)
	if err != nil {
		if s.useFallback(err, "categories") {
			return lexicon.SortedCategories(s.fallback), nil
		}
		return nil, err
	}
	return lexicon.SortStrings(categories), nil
}

// Stats returns collection statistics.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	stats, err := s.stats.Stats(ctx)
	if err != nil {
		if s.useFallback(err, "stats") {
			return lexicon.ComputeStats(s.fallback), nil
		}
		return models.Stats{}, err
	}
	return stats, nil
}

// Popular returns the most viewed words. Failures yield an empty list so the
// sidebar never takes the page down.
func (s *Service) Popular(ctx context.Context, limit int) ([]models.PopularWord, error) {
	popular, err := s.words.Popular(ctx, limit)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load popular words")
		return []models.PopularWord{}, nil
	}
	return popular, nil
}

// RecordView counts a view of id. Unknown ids are reported; any other failure
// is logged and swallowed.
func (s *Service) RecordView(ctx context.Context, id int) error {
	err := s.words.RecordView(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrNotFound) {
		return err
	}
	logrus.WithError(err).WithField("id", id).Warn("Failed to record view")
	return nil
}

// Create adds a word.
func (s *Service) Create(ctx context.Context, in models.WordInput) (models.Word, error) {
	return s.words.Create(ctx, in)
}

// Update replaces the editable fields of a word.
func (s *Service) Update(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	return s.words.Update(ctx, id, in)
}

// Delete removes a word permanently.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.words.Delete(ctx, id)
}

func findWord(words []models.Word, id int) (models.Word, error) {
	for _, w := range words {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Word{}, fmt.Errorf("word %d: %w", id, models.ErrNotFound)
}
