package server

import (
	"net/http"
	"strconv"

	"github.com/example/sozluk/internal/dictionary"
	"github.com/example/sozluk/internal/lexicon"
	"github.com/example/sozluk/pkg/models"
	"github.com/gin-gonic/gin"
)

const maxPopularLimit = 50

// wordPayload is the admin create/update body. The storage names source and
// example are accepted alongside book and quote.
type wordPayload struct {
	Word        string        `json:"word"`
	Meaning     string        `json:"meaning"`
	Source      *string       `json:"source"`
	Example     *string       `json:"example"`
	Book        *string       `json:"book"`
	Quote       *string       `json:"quote"`
	Category    *string       `json:"category"`
	Relations   *models.IDList `json:"relations"`
	IsWordOfDay *bool         `json:"isWordOfDay"`
	ViewCount   *int          `json:"viewCount"`
}

func (p wordPayload) input() models.WordInput {
	return models.WordInput{
		Word:        p.Word,
		Meaning:     p.Meaning,
		Book:        firstSet(p.Source, p.Book),
		Quote:       firstSet(p.Example, p.Quote),
		Category:    p.Category,
		Relations:   p.Relations,
		IsWordOfDay: p.IsWordOfDay,
		ViewCount:   p.ViewCount,
	}
}

func firstSet(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

type viewRequest struct {
	WordID int `json:"wordId"`
}

func (s *Server) listWords(c *gin.Context) {
	all, err := strconv.ParseBool(c.DefaultQuery("all", "false"))
	if err != nil {
		respondError(c, &models.ValidationError{Field: "all", Message: "all must be true or false"})
		return
	}
	q := dictionary.Query{
		Criteria: lexicon.Criteria{
			Query:    c.Query("q"),
			Book:     c.Query("book"),
			Category: c.Query("category"),
		},
		Sort: c.Query("sort"),
		All:  all,
	}
	words, err := s.dict.Words(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, words)
}

func (s *Server) getWord(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	w, err := s.dict.Word(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) relatedWords(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	related, err := s.dict.Related(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, related)
}

func (s *Server) dailyWord(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		w   models.Word
		err error
	)
	if date := c.Query("date"); date != "" {
		asOf, perr := s.dict.ParseDate(date)
		if perr != nil {
			respondError(c, perr)
			return
		}
		w, err = s.dict.Daily(ctx, asOf)
	} else {
		w, err = s.dict.Today(ctx)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) randomWord(c *gin.Context) {
	w, err := s.dict.Random(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) popularWords(c *gin.Context) {
	limit := s.popularLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, &models.ValidationError{Field: "limit", Message: "limit must be a positive integer"})
			return
		}
		limit = n
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}

	popular, err := s.dict.Popular(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, popular)
}

func (s *Server) recordView(c *gin.Context) {
	var req viewRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if req.WordID <= 0 {
		respondError(c, &models.ValidationError{Field: "wordId", Message: "wordId is required"})
		return
	}
	if err := s.dict.RecordView(c.Request.Context(), req.WordID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) createWord(c *gin.Context) {
	var p wordPayload
	if err := bindJSON(c, &p); err != nil {
		respondError(c, err)
		return
	}
	w, err := s.dict.Create(c.Request.Context(), p.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (s *Server) updateWord(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var p wordPayload
	if err := bindJSON(c, &p); err != nil {
		respondError(c, err)
		return
	}
	w, err := s.dict.Update(c.Request.Context(), id, p.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (s *Server) deleteWord(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.dict.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) listBooks(c *gin.Context) {
	books, err := s.dict.Books(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.dict.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.dict.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
