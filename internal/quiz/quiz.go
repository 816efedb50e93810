// Package quiz builds knowledge tests from the dictionary.
package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/pkg/models"
)

// QuestionType represents different types of questions
type QuestionType string

const (
	// MultipleChoice asks for the meaning of a headword
	MultipleChoice QuestionType = "multiple_choice"
	// ContextTest asks which word fills the blank in a quote
	ContextTest QuestionType = "context"
)

const (
	DefaultCount = 5
	MaxCount     = 20
	optionCount  = 4
	blankMarker  = "_____"
)

// Question represents a single quiz question
type Question struct {
	WordID       int          `json:"wordId"`
	Type         QuestionType `json:"type"`
	Prompt       string       `json:"prompt"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correctIndex"`
	Book         string       `json:"book,omitempty"`
}

// Options narrows the words a quiz draws from.
type Options struct {
	Count    int
	Type     QuestionType
	Book     string
	Category string
}

// Source lists candidate words.
type Source interface {
	Words(ctx context.Context, q dictionary.Query) ([]models.Word, error)
}

// Quiz generates questions
type Quiz struct {
	source Source
	mu     sync.Mutex
	rnd    *rand.Rand
}

// New creates a quiz over source. A zero seed uses the clock.
func New(source Source, seed int64) *Quiz {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Quiz{source: source, rnd: rand.New(rand.NewSource(seed))}
}

// Create generates a quiz with the specified parameters
func (q *Quiz) Create(ctx context.Context, opts Options) ([]Question, error) {
	if opts.Type == "" {
		opts.Type = MultipleChoice
	}
	if opts.Type != MultipleChoice && opts.Type != ContextTest {
		return nil, &models.ValidationError{Field: "type", Message: fmt.Sprintf("unknown question type %q", opts.Type)}
	}
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.Count > MaxCount {
		opts.Count = MaxCount
	}

	pool, err := q.source.Words(ctx, dictionary.Query{
		Criteria: lexicon.Criteria{Book: opts.Book, Category: opts.Category},
		All:      true,
	})
	if err != nil {
		return nil, err
	}
	// Distractors may come from the whole dictionary.
	all := pool
	if opts.Book != "" || opts.Category != "" {
		if all, err = q.source.Words(ctx, dictionary.Query{All: true}); err != nil {
			return nil, err
		}
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	candidates := append([]models.Word(nil), pool...)
	q.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	questions := make([]Question, 0, opts.Count)
	for _, w := range candidates {
		if len(questions) == opts.Count {
			break
		}
		var (
			question Question
			ok       bool
		)
		switch opts.Type {
		case MultipleChoice:
			question, ok = q.meaningQuestion(w, all)
		case ContextTest:
			question, ok = q.contextQuestion(w, all)
		}
		if ok {
			questions = append(questions, question)
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("not enough words for a %s quiz: %w", opts.Type, models.ErrNotFound)
	}
	return questions, nil
}

// Check reports whether answer is the meaning of the word, or the word itself
// for context questions.
func Check(w models.Word, qt QuestionType, answer string) bool {
	answer = strings.TrimSpace(answer)
	if qt == ContextTest {
		return lexicon.CompareWords(answer, w.Word) == 0
	}
	return answer == w.Meaning
}

func (q *Quiz) meaningQuestion(w models.Word, all []models.Word) (Question, bool) {
	distractors := q.distractors(w, all, func(o models.Word) string { return o.Meaning })
	if len(distractors) == 0 {
		return Question{}, false
	}
	options, correct := q.mix(w.Meaning, distractors)
	return Question{
		WordID:       w.ID,
		Type:         MultipleChoice,
		Prompt:       w.Word,
		Options:      options,
		CorrectIndex: correct,
		Book:         w.Book,
	}, true
}

func (q *Quiz) contextQuestion(w models.Word, all []models.Word) (Question, bool) {
	prompt, found := blankOut(w.Quote, w.Word)
	if !found {
		return Question{}, false
	}
	distractors := q.distractors(w, all, func(o models.Word) string { return o.Word })
	if len(distractors) == 0 {
		return Question{}, false
	}
	options, correct := q.mix(w.Word, distractors)
	return Question{
		WordID:       w.ID,
		Type:         ContextTest,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correct,
		Book:         w.Book,
	}, true
}

// distractors picks up to optionCount-1 wrong answers, preferring words of the
// same category, then the same book, then anything else.
func (q *Quiz) distractors(w models.Word, all []models.Word, answer func(models.Word) string) []string {
	var sameCategory, sameBook, rest []models.Word
	for _, o := range all {
		switch {
		case o.ID == w.ID:
			continue
		case w.SameCategory(o):
			sameCategory = append(sameCategory, o)
		case o.Book != "" && o.Book == w.Book:
			sameBook = append(sameBook, o)
		default:
			rest = append(rest, o)
		}
	}

	seen := map[string]bool{answer(w): true}
	options := make([]string, 0, optionCount-1)
	for _, tier := range [][]models.Word{sameCategory, sameBook, rest} {
		q.rnd.Shuffle(len(tier), func(i, j int) { tier[i], tier[j] = tier[j], tier[i] })
		for _, o := range tier {
			if len(options) == optionCount-1 {
				return options
			}
			a := answer(o)
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			options = append(options, a)
		}
	}
	return options
}

// mix shuffles the correct answer in among the distractors.
func (q *Quiz) mix(correct string, distractors []string) ([]string, int) {
	options := append([]string{correct}, distractors...)
	q.rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	for i, o := range options {
		if o == correct {
			return options, i
		}
	}
	return options, 0
}

// blankOut replaces the first occurrence of word in text, compared loosely under
// Turkish collation so "bedahet" matches "Bedâhet".
func blankOut(text, word string) (string, bool) {
	runes := []rune(text)
	n := len([]rune(word))
	if n == 0 {
		return "", false
	}
	for i := 0; i+n <= len(runes); i++ {
		if i > 0 && unicode.IsLetter(runes[i-1]) {
			continue
		}
		if lexicon.CompareWords(string(runes[i:i+n]), word) == 0 {
			return string(runes[:i]) + blankMarker + string(runes[i+n:]), true
		}
	}
	return "", false
}
