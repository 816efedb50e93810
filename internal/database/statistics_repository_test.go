package database

import (
	"context"
	"testing"

	"github.com/example/sozluk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAndStatistics(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWordRepository(db)
	for _, in := range []models.WordInput{
		{Word: "Behemehal", Meaning: "m", Book: "Huzur", Category: strPtr("zaman")},
		{Word: "Sükût", Meaning: "m", Book: "Huzur"},
		{Word: "İnbisat", Meaning: "m", Book: "Beş Şehir", Category: strPtr("mekân")},
		{Word: "Münhani", Meaning: "m", Book: "Beş Şehir", Category: strPtr("mekân")},
		{Word: "Yetim", Meaning: "m"},
	} {
		mustCreate(t, repo, in)
	}

	ctx := context.Background()
	catalog := NewCatalogRepository(db)

	books, err := catalog.Books(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beş Şehir", "Huzur"}, books)

	categories, err := catalog.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mekân", "zaman"}, categories)

	stats, err := NewStatisticsRepository(db).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalWords)
	assert.Equal(t, map[string]int{"Huzur": 2, "Beş Şehir": 2}, stats.BookCounts)
	assert.Equal(t, map[string]int{"mekân": 2, "zaman": 1}, stats.CategoryCounts)
}

func TestCatalogEmpty(t *testing.T) {
	db := setupTestDB(t)
	books, err := NewCatalogRepository(db).Books(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, books)
	assert.Empty(t, books)
}

func TestKVStore(t *testing.T) {
	store := NewKVStore(setupTestDB(t))
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "tanpinar-favorites:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, "tanpinar-favorites:abc", []byte("[1,2]")))
	require.NoError(t, store.Put(ctx, "tanpinar-favorites:abc", []byte("[3]")))

	value, ok, err := store.Get(ctx, "tanpinar-favorites:abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[3]", string(value))

	require.NoError(t, store.Delete(ctx, "tanpinar-favorites:abc"))
	require.NoError(t, store.Delete(ctx, "missing"))
	_, ok, err = store.Get(ctx, "tanpinar-favorites:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}
