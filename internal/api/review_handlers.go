package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/db"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/progress"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

type goalReviewRequest struct {
	GoalID      uint   `json:"goal_id"`
	Notes       string `json:"notes,omitempty"`
	Adjustments string `json:"adjustments,omitempty"`
}

type domainReviewRequest struct {
	DomainID    uint   `json:"domain_id"`
	Year        int    `json:"year"`
	Month       *int   `json:"month,omitempty"`
	Week        *int   `json:"week,omitempty"`
	Quarter     *int   `json:"quarter,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Adjustments string `json:"adjustments,omitempty"`
}

// GET /reviews/goals?goal_id=
func ListGoalReviewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.DB.Order("updated_at desc")
		if id := queryInt(c, "goal_id"); id != 0 {
			q = q.Where("goal_id = ?", id)
		}
		var reviews []tracker.GoalReview
		if err := q.Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /reviews/goals — creates the review; overall progress is computed
// from the goal's current tracker entries as part of the save.
func CreateGoalReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req goalReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.GoalID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "goal_id required"}})
			return
		}
		rv := tracker.GoalReview{
			GoalID:      req.GoalID,
			Notes:       req.Notes,
			Adjustments: req.Adjustments,
		}
		if err := progress.NewEngine(db.DB).RefreshGoalReview(&rv); err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

// PUT /reviews/goals/:id — saving a review is the only point where its
// persisted progress resyncs with tracker edits.
func UpdateGoalReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var rv tracker.GoalReview
		if err := db.DB.First(&rv, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Review not found"}})
			return
		}
		var req goalReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		rv.Notes = req.Notes
		rv.Adjustments = req.Adjustments
		if err := progress.NewEngine(db.DB).RefreshGoalReview(&rv); err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

// DELETE /reviews/goals/:id
func DeleteGoalReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.DB.Delete(&tracker.GoalReview{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}

// GET /reviews/domains?domain_id=
func ListDomainReviewsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.DB.Order("updated_at desc")
		if id := queryInt(c, "domain_id"); id != 0 {
			q = q.Where("domain_id = ?", id)
		}
		var reviews []tracker.DomainReview
		if err := q.Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /reviews/domains
func CreateDomainReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domainReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.DomainID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "domain_id required"}})
			return
		}
		rv := tracker.DomainReview{
			DomainID:    req.DomainID,
			Year:        req.Year,
			Month:       req.Month,
			Week:        req.Week,
			Quarter:     req.Quarter,
			Notes:       req.Notes,
			Adjustments: req.Adjustments,
		}
		if err := progress.NewEngine(db.DB).RefreshDomainReview(&rv); err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

// PUT /reviews/domains/:id
func UpdateDomainReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var rv tracker.DomainReview
		if err := db.DB.First(&rv, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Review not found"}})
			return
		}
		var req domainReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		rv.Notes = req.Notes
		rv.Adjustments = req.Adjustments
		if err := progress.NewEngine(db.DB).RefreshDomainReview(&rv); err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, rv)
	}
}

// DELETE /reviews/domains/:id
func DeleteDomainReviewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.DB.Delete(&tracker.DomainReview{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
