package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/auth"
	"github.com/BhargavPabbaraju/LifeTrackerBackend/internal/config"
)

func SetupRouter(cfg *config.Config, rdb *redis.Client) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())
	subpath := cfg.Server.Subpath // e.g. "/tracker" or any custom path, always starts with '/'

	// API routes
	group := r.Group(subpath)
	{
		group.GET("/health", healthHandler)
		group.GET("/config", configHandler(cfg))

		// Setup: only if no account yet
		group.POST("/setup", SetupHandler())

		// Auth
		group.POST("/auth/login", LoginHandler(cfg, rdb))
		group.POST("/auth/logout", auth.AuthMiddleware(cfg, rdb), LogoutHandler(rdb))
		group.GET("/auth/me", auth.AuthMiddleware(cfg, rdb), MeHandler())

		// Goal kind schemas for dynamic form rendering
		group.GET("/goal-types", ListGoalTypesHandler())

		authed := group.Group("", auth.AuthMiddleware(cfg, rdb))
		{
			// --- Reference data ---
			authed.GET("/domains", ListDomainsHandler())
			authed.POST("/domains", CreateDomainHandler())
			authed.PUT("/domains/:id", UpdateDomainHandler())
			authed.DELETE("/domains/:id", DeleteDomainHandler())
			authed.GET("/domains/:id/progress", DomainProgressHandler())

			authed.GET("/tags", ListTagsHandler())
			authed.POST("/tags", CreateTagHandler())
			authed.DELETE("/tags/:id", DeleteTagHandler())

			// --- Goals and their schedule entries ---
			authed.GET("/goals", ListGoalsHandler())
			authed.POST("/goals", CreateGoalHandler())
			authed.GET("/goals/:id", GetGoalHandler())
			authed.PUT("/goals/:id", UpdateGoalHandler())
			authed.DELETE("/goals/:id", DeleteGoalHandler())
			authed.GET("/goals/:id/progress", GoalProgressHandler())
			authed.POST("/goals/:id/schedules", CreateScheduleHandler())
			authed.DELETE("/schedules/:id", DeleteScheduleHandler())

			// --- Tracker entries ---
			authed.GET("/trackers", ListTrackersHandler())
			authed.POST("/trackers", CreateTrackerHandler())
			authed.GET("/trackers/:id", GetTrackerHandler())
			authed.PUT("/trackers/:id", UpdateTrackerHandler())
			authed.DELETE("/trackers/:id", DeleteTrackerHandler())

			// --- Reviews ---
			authed.GET("/reviews/goals", ListGoalReviewsHandler())
			authed.POST("/reviews/goals", CreateGoalReviewHandler())
			authed.PUT("/reviews/goals/:id", UpdateGoalReviewHandler())
			authed.DELETE("/reviews/goals/:id", DeleteGoalReviewHandler())

			authed.GET("/reviews/domains", ListDomainReviewsHandler())
			authed.POST("/reviews/domains", CreateDomainReviewHandler())
			authed.PUT("/reviews/domains/:id", UpdateDomainReviewHandler())
			authed.DELETE("/reviews/domains/:id", DeleteDomainReviewHandler())
		}
	}
	return r
}
