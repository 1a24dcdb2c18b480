package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/api/handlers/common"
	core "github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/middleware"
	"github.com/Harshitjoshi133/DeepShiva/internal/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LogsQuery /logs filters
type LogsQuery struct {
	Level    string `form:"level"`
	Endpoint string `form:"endpoint"`
	Limit    int    `form:"limit,default=100" binding:"min=1,max=1000"`
}

// StatsQuery /stats window
type StatsQuery struct {
	Hours int `form:"hours,default=24" binding:"min=1,max=168"`
}

// ClearQuery /clear-logs retention
type ClearQuery struct {
	DaysToKeep int `form:"days_to_keep,default=7" binding:"min=1,max=30"`
}

// ClearResponse /clear-logs result
type ClearResponse struct {
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	RequestID    string    `json:"request_id"`
	Timestamp    time.Time `json:"timestamp"`
	RemovedFiles []string  `json:"removed_files"`
}

// Handler monitoring dashboard routes
type Handler struct {
	reader *monitoring.Reader
	log    *logger.Logger
	errors *logger.ErrorTracker
}

// NewHandler creates the handler
func NewHandler(reader *monitoring.Reader, logs *logger.Manager) *Handler {
	log := logs.GetLogger("monitoring")
	return &Handler{reader: reader, log: log, errors: logger.NewErrorTracker(log)}
}

// Logs recent app.log entries
// @Summary Recent log entries
// @Tags Monitoring
// @Produce json
// @Param level query string false "log level"
// @Param endpoint query string false "endpoint substring"
// @Param limit query int false "1..1000"
// @Success 200 {array} monitoring.Entry
// @Router /api/v1/monitoring/logs [get]
func (h *Handler) Logs(c *gin.Context) {
	var q LogsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	h.log.WithContext(c.Request.Context()).Info("Log retrieval request",
		zap.String("level_filter", q.Level),
		zap.String("endpoint_filter", q.Endpoint),
		zap.Int("limit", q.Limit),
	)

	entries, err := h.reader.RecentLogs(q.Level, q.Endpoint, q.Limit)
	if err != nil {
		h.fail(c, "Failed to retrieve logs", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Stats request statistics over the last hours
// @Summary Log statistics
// @Tags Monitoring
// @Produce json
// @Param hours query int false "1..168"
// @Success 200 {object} monitoring.Stats
// @Router /api/v1/monitoring/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	var q StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	st, err := h.reader.Stats(time.Duration(q.Hours) * time.Hour)
	if err != nil {
		h.fail(c, "Failed to calculate statistics", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// HealthDetailed uptime, log volume and recent errors
// @Summary Detailed health
// @Tags Monitoring
// @Produce json
// @Success 200 {object} monitoring.Health
// @Router /api/v1/monitoring/health-detailed [get]
func (h *Handler) HealthDetailed(c *gin.Context) {
	health, err := h.reader.HealthDetailed()
	if err != nil {
		h.fail(c, "Failed to check system health", err)
		return
	}
	c.JSON(http.StatusOK, health)
}

// ClearLogs deletes rotated log generations older than days_to_keep
// @Summary Clear old logs
// @Tags Monitoring
// @Produce json
// @Param days_to_keep query int false "1..30"
// @Success 200 {object} ClearResponse
// @Router /api/v1/monitoring/clear-logs [post]
func (h *Handler) ClearLogs(c *gin.Context) {
	var q ClearQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}

	removed, err := h.reader.ClearLogs(q.DaysToKeep)
	if err != nil {
		h.fail(c, "Failed to clear logs", err)
		return
	}
	h.log.WithContext(c.Request.Context()).Info("Log cleanup completed",
		zap.Int("days_to_keep", q.DaysToKeep),
		zap.Strings("removed_files", removed),
	)
	c.JSON(http.StatusOK, ClearResponse{
		Message:      "Log cleanup completed. Kept logs from last " + strconv.Itoa(q.DaysToKeep) + " days.",
		Status:       "success",
		RequestID:    middleware.GetRequestIDFromGin(c),
		Timestamp:    time.Now().UTC(),
		RemovedFiles: removed,
	})
}

// PerformanceMetrics latency percentiles over the last 24 hours
// @Summary Performance metrics
// @Tags Monitoring
// @Produce json
// @Param endpoint query string false "endpoint substring"
// @Success 200 {object} monitoring.Performance
// @Router /api/v1/monitoring/performance-metrics [get]
func (h *Handler) PerformanceMetrics(c *gin.Context) {
	perf, err := h.reader.PerformanceMetrics(c.Query("endpoint"))
	if err != nil {
		h.fail(c, "Failed to retrieve performance metrics", err)
		return
	}
	c.JSON(http.StatusOK, perf)
}

func (h *Handler) fail(c *gin.Context, detail string, err error) {
	h.log.WithContext(c.Request.Context()).Error(detail, zap.Error(err))
	core.ResponseServerError(c, detail)
}
