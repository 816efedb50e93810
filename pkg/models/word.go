package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Word is a dictionary entry. Book and Quote are persisted as source and example.
type Word struct {
	ID          int     `json:"id" db:"id"`
	Word        string  `json:"word" db:"word"`
	Meaning     string  `json:"meaning" db:"meaning"`
	Book        string  `json:"book" db:"source"`
	Quote       string  `json:"quote" db:"example"`
	Category    *string `json:"category" db:"category"`
	IsWordOfDay bool    `json:"isWordOfDay" db:"is_word_of_day"`
	ViewCount   int     `json:"viewCount" db:"view_count"`
	Relations   IDList  `json:"relations" db:"relations"`
}

// HasCategory reports whether the word carries a non-empty category.
func (w Word) HasCategory() bool {
	return w.Category != nil && *w.Category != ""
}

// CategoryName returns the category or "" when absent.
func (w Word) CategoryName() string {
	if w.Category == nil {
		return ""
	}
	return *w.Category
}

// SameCategory reports whether both words carry the same category.
// An absent category never matches, not even another absent one.
func (w Word) SameCategory(other Word) bool {
	return w.HasCategory() && other.HasCategory() && *w.Category == *other.Category
}

// WordInput is the admin create/update payload. Relations, IsWordOfDay and
// ViewCount are optional and are left untouched by an update when nil.
type WordInput struct {
	Word        string  `json:"word"`
	Meaning     string  `json:"meaning"`
	Book        string  `json:"book"`
	Quote       string  `json:"quote"`
	Category    *string `json:"category"`
	Relations   *IDList `json:"relations,omitempty"`
	IsWordOfDay *bool   `json:"isWordOfDay,omitempty"`
	ViewCount   *int    `json:"viewCount,omitempty"`
}

// Normalize trims every text field and drops an empty category.
func (in *WordInput) Normalize() {
	in.Word = strings.TrimSpace(in.Word)
	in.Meaning = strings.TrimSpace(in.Meaning)
	in.Book = strings.TrimSpace(in.Book)
	in.Quote = strings.TrimSpace(in.Quote)
	if in.Category != nil {
		c := strings.TrimSpace(*in.Category)
		if c == "" {
			in.Category = nil
		} else {
			in.Category = &c
		}
	}
}

// Validate checks the required fields.
func (in WordInput) Validate() error {
	if strings.TrimSpace(in.Word) == "" {
		return &ValidationError{Field: "word", Message: "word is required"}
	}
	if strings.TrimSpace(in.Meaning) == "" {
		return &ValidationError{Field: "meaning", Message: "meaning is required"}
	}
	return nil
}

// PopularWord is one row of the most-viewed listing.
type PopularWord struct {
	ID    int    `json:"id" db:"id"`
	Word  string `json:"word" db:"word"`
	Count int    `json:"count" db:"view_count"`
}

// IDList is an ordered list of word ids stored as a JSON text column.
type IDList []int

// Scan implements sql.Scanner.
func (l *IDList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = IDList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDList", src)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*l = IDList{}
		return nil
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("decode relations: %w", err)
	}
	*l = ids
	return nil
}

// Value implements driver.Valuer. An empty list is stored as NULL.
func (l IDList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON keeps relations an array even when empty.
func (l IDList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(l))
}
