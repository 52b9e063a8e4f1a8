package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/goaltype"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/period"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

// respondSaveError maps save failures to responses: schema validation errors
// carry the complete missing-field list, period shape, status, locked-goal
// and uniqueness violations are bad requests, a missing referent is a 404,
// everything else is a server error.
func respondSaveError(c *gin.Context, err error) {
	var verr *goaltype.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"message":        verr.Error(),
			"missing_fields": verr.MissingFields,
		}})
		return
	}
	if errors.Is(err, period.ErrInvalidShape) ||
		errors.Is(err, tracker.ErrGoalLocked) ||
		errors.Is(err, tracker.ErrInvalidStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": err.Error()}})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Referenced record not found"}})
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Duplicate entry"}})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Save error"}})
}
