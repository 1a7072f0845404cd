package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rohan-darji/ai-humanizer/internal/domain/models"
)

// respondError maps domain errors onto HTTP statuses. Every error surfaces
// as a human-readable notice; nothing is retried server-side.
func respondError(c *gin.Context, err error) {
	var ice *models.InsufficientCreditsError
	if errors.As(err, &ice) {
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "Not enough credits",
			"message":   ice.Error(),
			"needed":    ice.Needed,
			"available": ice.Available,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrUnknownPlan), errors.Is(err, models.ErrUnknownCycle):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrPaymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
