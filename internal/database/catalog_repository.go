package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// CatalogRepository lists the distinct books and categories in the collection.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new repository instance
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Books returns every distinct source title.
func (r *CatalogRepository) Books(ctx context.Context) ([]string, error) {
	books := []string{}
	err := r.db.SelectContext(ctx, &books, `
		SELECT DISTINCT source
		FROM words
		WHERE source IS NOT NULL AND source <> ''
		ORDER BY source
	`)
	if err != nil {
		return nil, wrapErr("failed to get books", err)
	}
	return books, nil
}

// Categories returns every distinct category.
func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.SelectContext(ctx, &categories, `
		SELECT DISTINCT category
		FROM words
		WHERE category IS NOT NULL AND category <> ''
		ORDER BY category
	`)
	if err != nil {
		return nil, wrapErr("failed to get categories", err)
	}
	return categories, nil
}
