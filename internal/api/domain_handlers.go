package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/db"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/progress"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/tracker"
)

type nameRequest struct {
	Name string `json:"name"`
}

// GET /domains
func ListDomainsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var domains []tracker.Domain
		if err := db.DB.Order("name").Find(&domains).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, domains)
	}
}

// POST /domains
func CreateDomainHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req nameRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Name required"}})
			return
		}
		d := tracker.Domain{Name: req.Name}
		if err := db.DB.Create(&d).Error; err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

// PUT /domains/:id
func UpdateDomainHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var d tracker.Domain
		if err := db.DB.First(&d, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Domain not found"}})
			return
		}
		var req nameRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Name required"}})
			return
		}
		d.Name = req.Name
		if err := db.DB.Save(&d).Error; err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// DELETE /domains/:id
func DeleteDomainHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.DB.Delete(&tracker.Domain{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Domain deleted"})
	}
}

// GET /domains/:id/progress?year=&month=&week=&quarter=
func DomainProgressHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var d tracker.Domain
		if err := db.DB.First(&d, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "Domain not found"}})
			return
		}
		f := progress.PeriodFilter{
			Year:    queryInt(c, "year"),
			Month:   queryInt(c, "month"),
			Week:    queryInt(c, "week"),
			Quarter: queryInt(c, "quarter"),
		}
		pct, err := progress.NewEngine(db.DB).DomainProgress(d.ID, f)
		if err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"domain_id": d.ID,
			"year":      f.Year,
			"progress":  pct,
		})
	}
}

// GET /tags
func ListTagsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tags []tracker.Tag
		if err := db.DB.Order("name").Find(&tags).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "List error"}})
			return
		}
		c.JSON(http.StatusOK, tags)
	}
}

// POST /tags
func CreateTagHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req nameRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{"message": "Name required"}})
			return
		}
		tag := tracker.Tag{Name: req.Name}
		if err := db.DB.Create(&tag).Error; err != nil {
			respondSaveError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tag)
	}
}

// DELETE /tags/:id
func DeleteTagHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.DB.Delete(&tracker.Tag{}, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Delete error"}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
	}
}

// queryInt reads an optional integer query parameter; absent or malformed
// values read as 0.
func queryInt(c *gin.Context, name string) int {
	v := c.Query(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
