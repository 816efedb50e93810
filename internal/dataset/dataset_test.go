package dataset

import (
	"testing"

	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	words := Words()
	require.Len(t, words, 8)
	assert.Equal(t, "Bedâhet", words[0].Word)
	assert.Equal(t, models.IDList{2, 5}, words[0].Relations)

	related := lexicon.SelectRelated(words[0], words)
	require.Len(t, related, 2)
	assert.Equal(t, "Behemehal", related[0].Word)
	assert.Equal(t, "Sükût", related[1].Word)
}

func TestWordsReturnsCopy(t *testing.T) {
	a := Words()
	a[0].Word = "changed"
	assert.Equal(t, "Bedâhet", Words()[0].Word)
}

func TestParseRejectsBadEntries(t *testing.T) {
	_, err := Parse([]byte("words:\n  - id: 1\n    word: x\n"))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	_, err = Parse([]byte("words:\n  - {id: 1, word: a, meaning: b}\n  - {id: 1, word: c, meaning: d}\n"))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = Parse([]byte("words: ["))
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	words, err := Parse([]byte("words:\n  - {id: 3, word: a, meaning: b, category: zaman}\n"))
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "zaman", words[0].CategoryName())
	assert.Empty(t, words[0].Relations)
}
