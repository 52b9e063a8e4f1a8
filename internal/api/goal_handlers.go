package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/db"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/goaltype"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/progress"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

const dateLayout = "2006-01-02"

type scheduleRequest struct {
	Date        string         `json:"date"`
	StartTime   *string        `json:"start_time,omitempty"`
	DurationMin *int           `json:"duration_min,omitempty"`
	PlanData    map[string]any `json:"plan_data,omitempty"`
}

type goalRequest struct {
	DomainID    uint              `json:"domain_id"`
	TagIDs      []uint            `json:"tag_ids,omitempty"`
	Year        int               `json:"year"`
	Month       *int              `json:"month,omitempty"`
	Week        *int              `json:"week,omitempty"`
	Quarter     *int              `json:"quarter,omitempty"`
	Description string            `json:"description"`
	GoalType    string            `json:"goal_type"`
	GoalData    map[string]any    `json:"goal_data,omitempty"`
	Schedules   []scheduleRequest `json:"schedules,omitempty"`
}

func (r *scheduleRequest) toEntry(goalID uint) (tracker.ScheduleEntry, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return tracker.ScheduleEntry{}, err
	}
	plan, err := tracker.Blob(r.PlanData)
	if err != nil {
		return tracker.ScheduleEntry{}, err
	}
	return tracker.ScheduleEntry{
		GoalID:      goalID,
		Date:        date,
		StartTime:   r.StartTime,
		DurationMin: r.DurationMin,
		PlanData:    plan,
	}, nil
}

// GET /goal-types — schemas of every registered kind, for form rendering.
func ListGoalTypesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, goaltype.DescribeAll())
	}
}

// GET /goals?domain_id=&year=&month=&week=&quarter=
func ListGoalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.DB.Preload("Tags").Preload("Schedules")
		if id := queryInt(c, "domain_id"); id != 0 {
			q = q.Where("domain_id = ?", id)
		}
		if y := queryInt(c, "year"); y != 0 {
			q = q.Where("year = ?", y)
		}
		if m := queryInt(c, "month"); m != 0 {
			q = q.Where("month = ?", m)
		}
		if w := queryInt(c, "week"); w != 0 {
			q = q.Where("week = ?", w)
		}
		if qt := queryInt(c, "quarter"); qt != 0 {
			q = q.Where("quarter = ?", qt)
		}
		var goals []tracker.Goal
		if err := q.Find(&goals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, goals)
	}
}

// POST /goals — creates a goal with its nested schedule entries.
func CreateGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		goalData, err := tracker.Blob(req.GoalData)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid goal data"}})
			return
		}
		g := tracker.Goal{
			DomainID:    req.DomainID,
			Year:        req.Year,
			Month:       req.Month,
			Week:        req.Week,
			Quarter:     req.Quarter,
			Description: req.Description,
			GoalType:    req.GoalType,
			GoalData:    goalData,
		}
		err = db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&g).Error; err != nil {
				return err
			}
			if err := assignTags(tx, &g, req.TagIDs); err != nil {
				return err
			}
			for _, sr := range req.Schedules {
				entry, err := sr.toEntry(g.ID)
				if err != nil {
					return err
				}
				if err := tx.Create(&entry).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			respondSaveError(c, err)
			return
		}
		reloadGoal(c, g.ID, http.StatusCreated)
	}
}

// GET /goals/:id
func GetGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var g tracker.Goal
		if err := db.DB.Preload("Tags").Preload("Schedules").First(&g, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		c.JSON(http.StatusOK, g)
	}
}

// PUT /goals/:id — updates the goal; when schedules are supplied the
// existing entries are replaced wholesale.
func UpdateGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var g tracker.Goal
		if err := db.DB.First(&g, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		var req goalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		if req.DomainID != 0 {
			g.DomainID = req.DomainID
		}
		if req.Year != 0 {
			g.Year = req.Year
			g.Month = req.Month
			g.Week = req.Week
			g.Quarter = req.Quarter
		}
		if req.Description != "" {
			g.Description = req.Description
		}
		if req.GoalType != "" {
			g.GoalType = req.GoalType
		}
		if req.GoalData != nil {
			goalData, err := tracker.Blob(req.GoalData)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid goal data"}})
				return
			}
			g.GoalData = goalData
		}
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&g).Error; err != nil {
				return err
			}
			if req.TagIDs != nil {
				if err := assignTags(tx, &g, req.TagIDs); err != nil {
					return err
				}
			}
			if req.Schedules != nil {
				if err := tx.Where("goal_id = ?", g.ID).Delete(&tracker.ScheduleEntry{}).Error; err != nil {
					return err
				}
				for _, sr := range req.Schedules {
					entry, err := sr.toEntry(g.ID)
					if err != nil {
						return err
					}
					if err := tx.Create(&entry).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			respondSaveError(c, err)
			return
		}
		reloadGoal(c, g.ID, http.StatusOK)
	}
}

// DELETE /goals/:id — schedules go with the goal, tracker links are nulled.
func DeleteGoalHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var g tracker.Goal
		if err := db.DB.First(&g, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&tracker.TrackerEntry{}).Where("goal_id = ?", g.ID).
				Update("goal_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Where("goal_id = ?", g.ID).Delete(&tracker.ScheduleEntry{}).Error; err != nil {
				return err
			}
			return tx.Delete(&g).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
	}
}

// GET /goals/:id/progress
func GoalProgressHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var g tracker.Goal
		if err := db.DB.First(&g, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		pct, err := progress.NewEngine(db.DB).GoalProgress(&g)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Progress error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"goal_id":   g.ID,
			"goal_type": g.GoalType,
			"progress":  pct,
		})
	}
}

// POST /goals/:id/schedules
func CreateScheduleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var g tracker.Goal
		if err := db.DB.First(&g, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Goal not found"}})
			return
		}
		var req scheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid request"}})
			return
		}
		entry, err := req.toEntry(g.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Invalid schedule date"}})
			return
		}
		if err := db.DB.Create(&entry).Error; err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// DELETE /schedules/:id
func DeleteScheduleHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&tracker.TrackerEntry{}).Where("schedule_id = ?", c.Param("id")).
				Update("schedule_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&tracker.ScheduleEntry{}, c.Param("id")).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Schedule entry deleted"})
	}
}

func assignTags(tx *gorm.DB, g *tracker.Goal, tagIDs []uint) error {
	if tagIDs == nil {
		return nil
	}
	var tags []tracker.Tag
	if len(tagIDs) > 0 {
		if err := tx.Find(&tags, tagIDs).Error; err != nil {
			return err
		}
	}
	return tx.Model(g).Association("Tags").Replace(tags)
}

func reloadGoal(c *gin.Context, id uint, status int) {
	var g tracker.Goal
	if err := db.DB.Preload("Tags").Preload("Schedules").First(&g, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Reload error"}})
		return
	}
	c.JSON(status, g)
}
