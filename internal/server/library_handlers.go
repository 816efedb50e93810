package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type noteRequest struct {
	Note string `json:"note"`
}

type loginRequest struct {
	Password string `json:"password"`
}

func clientID(c *gin.Context) string {
	return c.GetHeader(ClientIDHeader)
}

func (s *Server) listFavorites(c *gin.Context) {
	ids, err := s.lib.Favorites(c.Request.Context(), clientID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": ids})
}

func (s *Server) toggleFavorite(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.dict.Word(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	on, err := s.lib.ToggleFavorite(ctx, clientID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wordId": id, "favorite": on})
}

func (s *Server) listNotes(c *gin.Context) {
	notes, err := s.lib.Notes(c.Request.Context(), clientID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make(map[string]string, len(notes))
	for id, text := range notes {
		out[strconv.Itoa(id)] = text
	}
	c.JSON(http.StatusOK, gin.H{"notes": out})
}

func (s *Server) getNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	note, err := s.lib.Note(c.Request.Context(), clientID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wordId": id, "note": note})
}

func (s *Server) saveNote(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := s.dict.Word(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	if err := s.lib.SaveNote(ctx, clientID(c), id, req.Note); err != nil {
		respondError(c, err)
		return
	}
	note, err := s.lib.Note(ctx, clientID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"wordId": id, "note": note})
}

// adminLogin lets the admin panel check a password before storing it.
func (s *Server) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}
	r := c.Request.Clone(c.Request.Context())
	r.Header.Del("Authorization")
	r.Header.Set(AdminPasswordHeader, req.Password)

	if err := s.auth.Authorize(r); err != nil {
		status := http.StatusUnauthorized
		if errors.Is(err, ErrAdminDisabled) {
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
