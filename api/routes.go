package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every /api/v1 route group
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	apiV1 := router.Group("/api/v1")

	registerChatRoutes(apiV1, handlers)
	registerTourismRoutes(apiV1, handlers)
	registerCultureRoutes(apiV1, handlers)
	registerVisionRoutes(apiV1, handlers)
	registerYogaRoutes(apiV1, handlers)
	registerEmergencyRoutes(apiV1, handlers)
	registerMonitoringRoutes(apiV1, handlers)
	registerDatabaseRoutes(apiV1, handlers)
}

func registerChatRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	chat := apiGroup.Group("/chat")
	{
		chat.POST("/query", h.Chat.Query)
		chat.GET("/model", h.Chat.Model)
		chat.GET("/health", h.Chat.Health)
	}
}

func registerTourismRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	tourism := apiGroup.Group("/tourism")
	{
		tourism.GET("/crowd-status", h.Content.CrowdStatus)
		tourism.POST("/calculate-carbon", h.Content.CalculateCarbon)
	}
}

func registerCultureRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	apiGroup.GET("/culture/products", h.Content.Products)
}

func registerVisionRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	apiGroup.POST("/vision/analyze", h.Content.AnalyzePose)
}

func registerYogaRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	apiGroup.GET("/yoga/poses", h.Content.YogaPoses)
}

func registerEmergencyRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	emergency := apiGroup.Group("/emergency")
	{
		emergency.GET("/contacts", h.Content.EmergencyContacts)
		emergency.GET("/first-aid", h.Content.FirstAid)
	}
}

func registerMonitoringRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	monitoring := apiGroup.Group("/monitoring")
	{
		monitoring.GET("/logs", h.Monitoring.Logs)
		monitoring.GET("/stats", h.Monitoring.Stats)
		monitoring.GET("/health-detailed", h.Monitoring.HealthDetailed)
		monitoring.POST("/clear-logs", h.Monitoring.ClearLogs)
		monitoring.GET("/performance-metrics", h.Monitoring.PerformanceMetrics)
	}
}

func registerDatabaseRoutes(apiGroup *gin.RouterGroup, h *Handlers) {
	db := apiGroup.Group("/database")
	{
		db.GET("/stats/overview", h.Database.Overview)
		db.GET("/stats/recent-activity", h.Database.RecentActivity)
		db.GET("/users", h.Database.Users)
		db.GET("/cultural-sites", h.Database.CulturalSites)
		db.GET("/artisans", h.Database.Artisans)
		db.GET("/artisan-products", h.Database.ArtisanProducts)
		db.GET("/tourism-places", h.Database.TourismPlaces)
		db.GET("/yoga-poses", h.Database.YogaPoses)
		db.GET("/emergency-contacts", h.Database.EmergencyContacts)
		db.GET("/health", h.Database.Health)

		// dashboard snapshots
		db.GET("/metrics", h.Metrics.List)
		db.POST("/metrics/snapshot", h.Metrics.Snapshot)
	}
}
