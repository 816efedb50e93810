package database

import (
	"context"

	"github.com/example/sozluk/pkg/models"
	"github.com/jmoiron/sqlx"
)

// StatisticsRepository aggregates the collection in the database.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

type countRow struct {
	Name  string `db:"name"`
	Total int    `db:"total"`
}

// Stats returns the word total and per-book and per-category counts.
func (r *StatisticsRepository) Stats(ctx context.Context) (models.Stats, error) {
	stats := models.Stats{
		BookCounts:     make(map[string]int),
		CategoryCounts: make(map[string]int),
	}

	if err := r.db.GetContext(ctx, &stats.TotalWords, "SELECT COUNT(*) FROM words"); err != nil {
		return models.Stats{}, wrapErr("failed to count words", err)
	}

	var books []countRow
	err := r.db.SelectContext(ctx, &books, `
		SELECT source AS name, COUNT(*) AS total
		FROM words
		WHERE source IS NOT NULL AND source <> ''
		GROUP BY source
	`)
	if err != nil {
		return models.Stats{}, wrapErr("failed to count books", err)
	}
	for _, b := range books {
		stats.BookCounts[b.Name] = b.Total
	}

	var categories []countRow
	err = r.db.SelectContext(ctx, &categories, `
		SELECT category AS name, COUNT(*) AS total
		FROM words
		WHERE category IS NOT NULL AND category <> ''
		GROUP BY category
	`)
	if err != nil {
		return models.Stats{}, wrapErr("failed to count categories", err)
	}
	for _, c := range categories {
		stats.CategoryCounts[c.Name] = c.Total
	}

	return stats, nil
}
