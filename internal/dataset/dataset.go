// Package dataset ships the built-in dictionary used to seed an empty
// database and to keep the site readable while the database is down.
package dataset

import (
	_ "embed"
	"fmt"

	"github.com/example/sozluk/pkg/models"
	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var dictionaryYAML []byte

type entry struct {
	ID        int    `yaml:"id"`
	Word      string `yaml:"word"`
	Meaning   string `yaml:"meaning"`
	Book      string `yaml:"book"`
	Quote     string `yaml:"quote"`
	Category  string `yaml:"category"`
	Relations []int  `yaml:"relations"`
}

type document struct {
	Words []entry `yaml:"words"`
}

// Parse decodes a dictionary document.
func Parse(data []byte) ([]models.Word, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dictionary: %w", err)
	}

	words := make([]models.Word, 0, len(doc.Words))
	seen := make(map[int]bool, len(doc.Words))
	for i, e := range doc.Words {
		in := models.WordInput{Word: e.Word, Meaning: e.Meaning}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if e.ID <= 0 || seen[e.ID] {
			return nil, fmt.Errorf("entry %d: invalid or duplicate id %d", i+1, e.ID)
		}
		seen[e.ID] = true

		w := models.Word{
			ID:        e.ID,
			Word:      e.Word,
			Meaning:   e.Meaning,
			Book:      e.Book,
			Quote:     e.Quote,
			Relations: models.IDList(e.Relations),
		}
		if e.Category != "" {
			c := e.Category
			w.Category = &c
		}
		words = append(words, w)
	}
	return words, nil
}

// Words returns a fresh copy of the built-in dictionary.
func Words() []models.Word {
	words, err := Parse(dictionaryYAML)
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	return words
}
