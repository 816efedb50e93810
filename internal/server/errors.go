package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/example/sozluk/internal/library"
	"github.com/example/sozluk/pkg/models"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case models.IsValidation(err), errors.Is(err, library.ErrMissingClient):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
		message = models.ErrNotFound.Error()
	case errors.Is(err, models.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
		message = models.ErrStorageUnavailable.Error()
	}

	entry := requestLog(c).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Debug("Request error")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// pathID reads the :id route parameter.
func pathID(c *gin.Context) (int, error) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Message: "invalid word id " + strconv.Quote(raw)}
	}
	return id, nil
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return &models.ValidationError{Field: "body", Message: "invalid request body: " + err.Error()}
	}
	return nil
}
