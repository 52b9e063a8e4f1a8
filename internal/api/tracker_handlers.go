package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/db"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/progress"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

type trackerRequest struct {
	GoalID             *uint          `json:"goal_id,omitempty"`
	ScheduleID         *uint          `json:"schedule_id,omitempty"`
	DomainID           uint           `json:"domain_id"`
	TagIDs             []uint         `json:"tag_ids,omitempty"`
	Date               string         `json:"date"`
	Description        string         `json:"description"`
	PlannedStartTime   *string        `json:"planned_start_time,omitempty"`
	PlannedDurationMin *int           `json:"planned_duration_min,omitempty"`
	ActualStartTime    *string        `json:"actual_start_time,omitempty"`
	ActualDurationMin  *int           `json:"actual_duration_min,omitempty"`
	LogData            map[string]any `json:"log_data,omitempty"`
	Status             string         `json:"status,omitempty"`
}

// trackerJSON embeds the derived progress value, which is null for entries
// without a typed goal.
func trackerJSON(entry *tracker.TrackerEntry) gin.H {
	var prog any
	if v, err := progress.NewEngine(db.DB).OccurrenceProgress(entry); err == nil && v != nil {
		prog = *v
	}
	return gin.H{
		"id":                   entry.ID,
		"goal_id":              entry.GoalID,
		"schedule_id":          entry.ScheduleID,
		"domain_id":            entry.DomainID,
		"tags":                 entry.Tags,
		"date":                 entry.Date.Format(dateLayout),
		"description":          entry.Description,
		"planned_start_time":   entry.PlannedStartTime,
		"planned_duration_min": entry.PlannedDurationMin,
		"actual_start_time":    entry.ActualStartTime,
		"actual_duration_min":  entry.ActualDurationMin,
		"log_data":             entry.LogData,
		"status":               entry.Status,
		"progress":             prog,
		"createdAt":            entry.CreatedAt,
		"updatedAt":            entry.UpdatedAt,
	}
}

// GET /trackers?domain_id=&goal_id=&status=&from=&to=
func ListTrackersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.DB.Preload("Tags")
		if id := queryInt(c, "domain_id"); id != 0 {
			q = q.Where("domain_id = ?", id)
		}
		if id := queryInt(c, "goal_id"); id != 0 {
			q = q.Where("goal_id = ?", id)
		}
		if s := c.Query("status"); s != "" {
			q = q.Where("status = ?", s)
		}
		if from := c.Query("from"); from != "" {
			if d, err := time.Parse(dateLayout, from); err == nil {
				q = q.Where("date >= ?", d)
			}
		}
		if to := c.Query("to"); to != "" {
			if d, err := time.Parse(dateLayout, to); err == nil {
				q = q.Where("date <= ?", d)
			}
		}
		var entries []tracker.TrackerEntry
		if err := q.Order("date").Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		result := make([]gin.H, 0, len(entries))
		for i := range entries {
			result = append(result, trackerJSON(&entries[i]))
		}
		c.JSON(http.StatusOK, result)
	}
}

// POST /trackers
func CreateTrackerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req trackerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid date"}})
			return
		}
		logData, err := tracker.Blob(req.LogData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid log data"}})
			return
		}
		entry := tracker.TrackerEntry{
			GoalID:             req.GoalID,
			ScheduleID:         req.ScheduleID,
			DomainID:           req.DomainID,
			Date:               date,
			Description:        req.Description,
			PlannedStartTime:   req.PlannedStartTime,
			PlannedDurationMin: req.PlannedDurationMin,
			ActualStartTime:    req.ActualStartTime,
			ActualDurationMin:  req.ActualDurationMin,
			LogData:            logData,
			Status:             tracker.Status(req.Status),
		}
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			return assignTrackerTags(tx, &entry, req.TagIDs)
		})
		if err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, trackerJSON(&entry))
	}
}

// GET /trackers/:id
func GetTrackerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var entry tracker.TrackerEntry
		if err := db.DB.Preload("Tags").First(&entry, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Tracker entry not found"}})
			return
		}
		c.JSON(http.StatusOK, trackerJSON(&entry))
	}
}

// PUT /trackers/:id
func UpdateTrackerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var entry tracker.TrackerEntry
		if err := db.DB.First(&entry, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Tracker entry not found"}})
			return
		}
		var req trackerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.GoalID != nil {
			entry.GoalID = req.GoalID
		}
		if req.ScheduleID != nil {
			entry.ScheduleID = req.ScheduleID
		}
		if req.DomainID != 0 {
			entry.DomainID = req.DomainID
		}
		if req.Date != "" {
			date, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid date"}})
				return
			}
			entry.Date = date
		}
		if req.Description != "" {
			entry.Description = req.Description
		}
		if req.PlannedStartTime != nil {
			entry.PlannedStartTime = req.PlannedStartTime
		}
		if req.PlannedDurationMin != nil {
			entry.PlannedDurationMin = req.PlannedDurationMin
		}
		if req.ActualStartTime != nil {
			entry.ActualStartTime = req.ActualStartTime
		}
		if req.ActualDurationMin != nil {
			entry.ActualDurationMin = req.ActualDurationMin
		}
		if req.LogData != nil {
			logData, err := tracker.Blob(req.LogData)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid log data"}})
				return
			}
			entry.LogData = logData
		}
		if req.Status != "" {
			entry.Status = tracker.Status(req.Status)
		}
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&entry).Error; err != nil {
				return err
			}
			return assignTrackerTags(tx, &entry, req.TagIDs)
		})
		if err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, trackerJSON(&entry))
	}
}

// DELETE /trackers/:id
func DeleteTrackerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.DB.Delete(&tracker.TrackerEntry{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tracker entry deleted"})
	}
}

func assignTrackerTags(tx *gorm.DB, entry *tracker.TrackerEntry, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}
	var tags []tracker.Tag
	if len(tagIDs) > 0 {
		if err := tx.Find(&tags, tagIDs).Error; err != nil {
			return err
		}
	}
	return tx.Model(entry).Association("Tags").Replace(tags)
}
