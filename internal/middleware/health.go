package middleware

import (
	"net/http"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultHealthPaths probe and documentation paths exempt from access logging
var DefaultHealthPaths = []string{"/health", "/", "/docs", "/redoc"}

// HealthCheckMiddleware outermost stage. Allow-listed paths skip access
// records and correlation headers; any response >= 500 produces one error
// record here.
func HealthCheckMiddleware(log *logger.Logger, paths []string) gin.HandlerFunc {
	if len(paths) == 0 {
		paths = DefaultHealthPaths
	}
	allow := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		allow[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := allow[c.Request.URL.Path]; ok {
			c.Set(skipAccessLogKey, true)
		}

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusInternalServerError {
			return
		}
		fields := []zap.Field{
			logger.Path(c.Request.URL.Path),
			logger.Method(c.Request.Method),
			logger.StatusCode(status),
			zap.Bool("health_event", true),
		}
		if id := GetRequestIDFromGin(c); id != "" {
			fields = append(fields, logger.RequestID(id))
		}
		if last := c.Errors.Last(); last != nil {
			fields = append(fields, zap.String("error", last.Error()))
		}
		log.Error("Server error detected", fields...)
	}
}
