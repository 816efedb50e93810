package server

import (
	"net/http"
	"strconv"

	"github.com/example/sozluk/internal/quiz"
	"github.com/example/sozluk/pkg/models"
	"github.com/gin-gonic/gin"
)

type answerRequest struct {
	WordID int               `json:"wordId"`
	Type   quiz.QuestionType `json:"type"`
	Answer string            `json:"answer"`
}

func (s *Server) createQuiz(c *gin.Context) {
	opts := quiz.Options{
		Type:     quiz.QuestionType(c.Query("type")),
		Book:     c.Query("book"),
		Category: c.Query("category"),
	}
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, &models.ValidationError{Field: "count", Message: "count must be a positive integer"})
			return
		}
		opts.Count = n
	}

	questions, err := s.quiz.Create(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questions})
}

func (s *Server) checkAnswer(c *gin.Context) {
	var req answerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	if req.WordID <= 0 {
		respondError(c, &models.ValidationError{Field: "wordId", Message: "wordId is required"})
		return
	}
	w, err := s.dict.Word(c.Request.Context(), req.WordID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"correct": quiz.Check(w, req.Type, req.Answer),
		"word":    w.Word,
		"meaning": w.Meaning,
	})
}
