package library

import (
	"context"
	"testing"

	"github.com/example/sozluk/internal/database"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	db, err := database.Open(context.Background(), "sqlite3://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sql":    database.NewKVStore(db),
	}
}

func TestFavorites(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			lib := New(store)
			ctx := context.Background()

			favs, err := lib.Favorites(ctx, "reader-1")
			require.NoError(t, err)
			assert.Empty(t, favs)

			on, err := lib.ToggleFavorite(ctx, "reader-1", 5)
			require.NoError(t, err)
			assert.True(t, on)
			_, err = lib.ToggleFavorite(ctx, "reader-1", 2)
			require.NoError(t, err)

			favs, err = lib.Favorites(ctx, "reader-1")
			require.NoError(t, err)
			assert.Equal(t, []int{5, 2}, favs)

			on, err = lib.ToggleFavorite(ctx, "reader-1", 5)
			require.NoError(t, err)
			assert.False(t, on)

			favs, err = lib.Favorites(ctx, "reader-1")
			require.NoError(t, err)
			assert.Equal(t, []int{2}, favs)

			other, err := lib.Favorites(ctx, "reader-2")
			require.NoError(t, err)
			assert.Empty(t, other, "clients are isolated")
		})
	}
}

func TestNotes(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			lib := New(store)
			ctx := context.Background()

			require.NoError(t, lib.SaveNote(ctx, "reader-1", 4, "Beş Şehir'de geçiyor"))
			require.NoError(t, lib.SaveNote(ctx, "reader-1", 1, "ilk okuma"))

			note, err := lib.Note(ctx, "reader-1", 4)
			require.NoError(t, err)
			assert.Equal(t, "Beş Şehir'de geçiyor", note)

			ids, err := lib.NotedWords(ctx, "reader-1")
			require.NoError(t, err)
			assert.Equal(t, []int{1, 4}, ids)

			require.NoError(t, lib.SaveNote(ctx, "reader-1", 4, "   "))
			note, err = lib.Note(ctx, "reader-1", 4)
			require.NoError(t, err)
			assert.Empty(t, note)

			require.NoError(t, lib.SaveNote(ctx, "reader-1", 1, ""))
			notes, err := lib.Notes(ctx, "reader-1")
			require.NoError(t, err)
			assert.Empty(t, notes)
		})
	}
}

func TestMissingClient(t *testing.T) {
	lib := New(NewMemoryStore())
	ctx := context.Background()

	_, err := lib.Favorites(ctx, " ")
	assert.ErrorIs(t, err, ErrMissingClient)
	_, err = lib.ToggleFavorite(ctx, "", 1)
	assert.ErrorIs(t, err, ErrMissingClient)
	assert.ErrorIs(t, lib.SaveNote(ctx, "", 1, "x"), ErrMissingClient)
}

func TestCorruptDocumentReadsAsEmpty(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	store := NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "tanpinar-favorites:r", []byte("{not json")))

	favs, err := New(store).Favorites(context.Background(), "r")
	require.NoError(t, err)
	assert.Empty(t, favs)

	entry := hook.LastEntry()
	require.NotNil(t, entry, "the discarded document is logged")
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "tanpinar-favorites:r", entry.Data["key"])
}
