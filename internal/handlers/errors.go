package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skyreserve/airline-backend/internal/models"
)

// respondError maps the shared error taxonomy onto the HTTP status
// convention: 400 validation, 404 missing entity, 409 seat conflict or
// repeated refund, 500 everything else. The raw error never leaks for
// unexpected failures.
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var seatConflict *models.SeatConflictError
	var taskErr *models.TaskExecutionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &seatConflict):
		c.JSON(http.StatusConflict, gin.H{"error": seatConflict.Error()})
	case errors.Is(err, models.ErrAlreadyRefunded):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrAlreadyRefunded.Error()})
	case errors.Is(err, models.ErrInventoryExists):
		c.JSON(http.StatusConflict, gin.H{"error": models.ErrInventoryExists.Error()})
	case errors.As(err, &taskErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": taskErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
