package api

import (
	"net/http"

	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"
	"github.com/Harshitjoshi133/DeepShiva/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Harshitjoshi133/DeepShiva/api/docs"
)

const docsIndex = "/docs/index.html"

// SetupRouter builds the engine: request pipeline, metrics, CORS, system
// endpoints and the /api/v1 routes.
func SetupRouter(c *AppContainer, handlers *Handlers) *gin.Engine {
	router := gin.New()

	healthPaths := c.Config.Security.HealthPaths
	if len(healthPaths) == 0 {
		healthPaths = middleware.DefaultHealthPaths
	}

	// health check -> security -> logging
	router.Use(middleware.Chain(middleware.Dependencies{
		Logs:               c.Logs,
		Limiter:            c.Limiter,
		Detector:           c.Detector,
		HealthPaths:        healthPaths,
		SlowAPIThresholdMs: c.Config.Performance.SlowAPIThresholdMs,
	})...)

	router.Use(metrics.PrometheusMiddleware())
	router.Use(CORS(c.Config.Server.CORSOrigins))

	// system endpoints
	router.GET("/", Root)
	router.GET("/health", HealthCheck)
	router.GET("/ready", ReadinessCheck(c.DB))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OpenAPI UI
	router.GET("/docs", redirect(docsIndex))
	router.GET("/redoc", redirect(docsIndex))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	RegisterRoutes(router, handlers)

	router.NoRoute(NotFound)

	return router
}

func redirect(location string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, location)
	}
}
