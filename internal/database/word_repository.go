package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/example/sozluk/pkg/models"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPopularLimit is used when a caller asks for a non-positive limit.
const DefaultPopularLimit = 5

// wordRow mirrors the words table, where most columns are nullable.
type wordRow struct {
	ID          int            `db:"id"`
	Word        string         `db:"word"`
	Meaning     string         `db:"meaning"`
	Source      sql.NullString `db:"source"`
	Example     sql.NullString `db:"example"`
	Category    sql.NullString `db:"category"`
	IsWordOfDay sql.NullBool   `db:"is_word_of_day"`
	ViewCount   sql.NullInt64  `db:"view_count"`
	Relations   models.IDList  `db:"relations"`
}

func (r wordRow) toModel() models.Word {
	w := models.Word{
		ID:          r.ID,
		Word:        r.Word,
		Meaning:     r.Meaning,
		Book:        r.Source.String,
		Quote:       r.Example.String,
		IsWordOfDay: r.IsWordOfDay.Valid && r.IsWordOfDay.Bool,
		ViewCount:   int(r.ViewCount.Int64),
		Relations:   r.Relations,
	}
	if r.Category.Valid && r.Category.String != "" {
		c := r.Category.String
		w.Category = &c
	}
	if w.Relations == nil {
		w.Relations = models.IDList{}
	}
	return w
}

// WordRepository handles database operations for words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// reader tolerates columns the row struct doesn't know and older tables
// that lack columns it does know.
func (r *WordRepository) reader() *sqlx.DB {
	return r.db.Unsafe()
}

// List returns all words ordered by headword
func (r *WordRepository) List(ctx context.Context) ([]models.Word, error) {
	var rows []wordRow
	if err := r.reader().SelectContext(ctx, &rows, "SELECT * FROM words ORDER BY word ASC"); err != nil {
		return nil, wrapErr("failed to get words", err)
	}
	words := make([]models.Word, len(rows))
	for i, row := range rows {
		words[i] = row.toModel()
	}
	return words, nil
}

// Get returns a word by ID
func (r *WordRepository) Get(ctx context.Context, id int) (models.Word, error) {
	var row wordRow
	err := r.reader().GetContext(ctx, &row, r.db.Rebind("SELECT * FROM words WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Word{}, fmt.Errorf("word %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Word{}, wrapErr("failed to get word by ID", err)
	}
	return row.toModel(), nil
}

// FindByWordAndBook returns the word with the given headword and book, if any.
func (r *WordRepository) FindByWordAndBook(ctx context.Context, word, book string) (models.Word, bool, error) {
	var row wordRow
	err := r.reader().GetContext(ctx, &row,
		r.db.Rebind("SELECT * FROM words WHERE word = ? AND COALESCE(source, '') = ? ORDER BY id LIMIT 1"),
		word, book)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Word{}, false, nil
	}
	if err != nil {
		return models.Word{}, false, wrapErr("failed to find word", err)
	}
	return row.toModel(), true, nil
}

// Popular returns the most viewed words, ties broken by headword under
// Turkish collation.
func (r *WordRepository) Popular(ctx context.Context, limit int) ([]models.PopularWord, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	// The count at position limit bounds the query, so a tie group that
	// straddles the limit is fetched whole and cut after sorting.
	var thresholds []int
	err := r.db.SelectContext(ctx, &thresholds, r.db.Rebind(`
		SELECT COALESCE(view_count, 0)
		FROM words
		WHERE COALESCE(view_count, 0) > 0
		ORDER BY view_count DESC
		LIMIT 1 OFFSET ?
	`), limit-1)
	if err != nil {
		if isMissingColumn(err, "view_count") {
			// Nothing has been viewed yet on this deployment.
			return []models.PopularWord{}, nil
		}
		return nil, wrapErr("failed to get popular words", err)
	}
	threshold := 1
	if len(thresholds) > 0 {
		threshold = thresholds[0]
	}

	popular := []models.PopularWord{}
	err = r.db.SelectContext(ctx, &popular, r.db.Rebind(`
		SELECT id, word, COALESCE(view_count, 0) AS view_count
		FROM words
		WHERE COALESCE(view_count, 0) >= ?
	`), threshold)
	if err != nil {
		return nil, wrapErr("failed to get popular words", err)
	}

	c := collate.New(language.Turkish, collate.Loose)
	sort.SliceStable(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		if cmp := c.CompareString(popular[i].Word, popular[j].Word); cmp != 0 {
			return cmp < 0
		}
		return popular[i].ID < popular[j].ID
	})
	if len(popular) > limit {
		popular = popular[:limit]
	}
	return popular, nil
}

// Create inserts a new word
func (r *WordRepository) Create(ctx context.Context, in models.WordInput) (models.Word, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Word{}, err
	}
	if err := validateAdminFields(in); err != nil {
		return models.Word{}, err
	}

	columns := []string{"word", "meaning", "source", "example", "category"}
	args := []interface{}{in.Word, in.Meaning, nullString(in.Book), nullString(in.Quote), in.Category}
	if in.Relations != nil {
		columns = append(columns, "relations")
		args = append(args, *in.Relations)
	}
	if in.IsWordOfDay != nil {
		columns = append(columns, "is_word_of_day")
		args = append(args, *in.IsWordOfDay)
	}
	if in.ViewCount != nil {
		columns = append(columns, "view_count")
		args = append(args, *in.ViewCount)
	}

	query := fmt.Sprintf("INSERT INTO words (%s) VALUES (%s) RETURNING id",
		strings.Join(columns, ", "), placeholders(len(columns)))

	var id int
	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query), args...).Scan(&id); err != nil {
		return models.Word{}, wrapErr("failed to create word", err)
	}

	logrus.WithFields(logrus.Fields{"id": id, "word": in.Word}).Info("Word created")
	return r.Get(ctx, id)
}

// Update modifies an existing word. Relations, IsWordOfDay and ViewCount are
// only written when set.
func (r *WordRepository) Update(ctx context.Context, id int, in models.WordInput) (models.Word, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Word{}, err
	}
	if err := validateAdminFields(in); err != nil {
		return models.Word{}, err
	}

	sets := []string{"word = ?", "meaning = ?", "source = ?", "example = ?", "category = ?"}
	args := []interface{}{in.Word, in.Meaning, nullString(in.Book), nullString(in.Quote), in.Category}
	if in.Relations != nil {
		sets = append(sets, "relations = ?")
		args = append(args, *in.Relations)
	}
	if in.IsWordOfDay != nil {
		sets = append(sets, "is_word_of_day = ?")
		args = append(args, *in.IsWordOfDay)
	}
	if in.ViewCount != nil {
		sets = append(sets, "view_count = ?")
		args = append(args, *in.ViewCount)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE words SET %s WHERE id = ?", strings.Join(sets, ", "))
	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return models.Word{}, wrapErr("failed to update word", err)
	}
	if err := requireRow(result, id); err != nil {
		return models.Word{}, err
	}

	logrus.WithField("id", id).Info("Word updated")
	return r.Get(ctx, id)
}

// Delete removes a word. Relations held by other words are left as they are.
func (r *WordRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM words WHERE id = ?"), id)
	if err != nil {
		return wrapErr("failed to delete word", err)
	}
	if err := requireRow(result, id); err != nil {
		return err
	}
	logrus.WithField("id", id).Info("Word deleted")
	return nil
}

// RecordView increments the view counter, adding the column first if this
// deployment predates it.
func (r *WordRepository) RecordView(ctx context.Context, id int) error {
	err := r.incrementView(ctx, id)
	if err == nil || !isMissingColumn(err, "view_count") {
		return err
	}

	logrus.Warn("view_count column missing, creating it")
	if _, aerr := r.db.ExecContext(ctx, addColumnSQL(r.db, "words", "view_count", "INTEGER DEFAULT 0")); aerr != nil {
		return wrapErr("failed to add view_count column", aerr)
	}
	return r.incrementView(ctx, id)
}

func (r *WordRepository) incrementView(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE words SET view_count = COALESCE(view_count, 0) + 1 WHERE id = ?"), id)
	if err != nil {
		return wrapErr("failed to record view", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("word %d: %w", id, models.ErrNotFound)
	}
	return nil
}

func validateAdminFields(in models.WordInput) error {
	if in.ViewCount != nil && *in.ViewCount < 0 {
		return &models.ValidationError{Field: "viewCount", Message: "viewCount cannot be negative"}
	}
	return nil
}

func isMissingColumn(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), column)
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
