package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/infra"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// APIVersion reported by the root endpoint and the OpenAPI document
const APIVersion = "1.0.0"

const readinessTimeout = 2 * time.Second

// RootResponse welcome payload
type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

// HealthResponse liveness payload
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadinessResponse readiness payload
type ReadinessResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Root welcome message
// @Summary API root
// @Tags System
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: "Welcome to Deep-Shiva API",
		Version: APIVersion,
		Status:  "operational",
	})
}

// HealthCheck liveness probe
// @Summary Service health
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

// ReadinessCheck readiness probe including database connectivity
// @Summary Service readiness
// @Tags System
// @Produce json
// @Success 200 {object} ReadinessResponse
// @Failure 503 {object} ReadinessResponse
// @Router /ready [get]
func ReadinessCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := infra.PingDatabase(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, ReadinessResponse{
				Status: "not_ready",
				Reason: "database ping failed",
			})
			return
		}

		c.JSON(http.StatusOK, ReadinessResponse{Status: "ready", Database: "connected"})
	}
}

// NotFound fallback for unmatched routes
func NotFound(c *gin.Context) {
	common.ResponseNotFound(c, "")
}
