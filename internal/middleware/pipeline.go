package middleware

import (
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/ratelimit"
	"github.com/Harshitjoshi133/DeepShiva/internal/security"

	"github.com/gin-gonic/gin"
)

// Dependencies collaborators handed to the request chain
type Dependencies struct {
	Logs               *logger.Manager
	Limiter            ratelimit.Limiter
	Detector           *security.Detector // nil disables pattern monitoring
	HealthPaths        []string
	SlowAPIThresholdMs float64
}

// Chain request stages, outermost first: health check, security, logging.
// Route handlers run inside the logging stage.
func Chain(d Dependencies) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		HealthCheckMiddleware(d.Logs.GetLogger("health"), d.HealthPaths),
		SecurityMiddleware(d.Limiter, d.Detector, logger.NewSecurityLogger(d.Logs.GetLogger("security"))),
		LoggingMiddleware(d.Logs.Access(), d.Logs.GetLogger("middleware"), d.SlowAPIThresholdMs),
	}
}
