// Package metrics serves the daily dashboard metric snapshots.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/api/handlers/common"
	core "github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Store dashboard metric persistence
type Store interface {
	SnapshotDashboardMetrics(ctx context.Context, at time.Time) (int, error)
	ListDashboardMetrics(ctx context.Context, category string, p core.Pagination) ([]models.DashboardMetric, error)
}

// SnapshotQuery optional snapshot time
type SnapshotQuery struct {
	At string `form:"at"` // RFC3339, defaults to now
}

// Handler dashboard metric routes
type Handler struct {
	store  Store
	log    *logger.Logger
	errors *logger.ErrorTracker
	now    func() time.Time
}

// NewHandler creates the handler
func NewHandler(s Store, logs *logger.Manager) *Handler {
	log := logs.GetLogger("dashboard_metrics")
	return &Handler{store: s, log: log, errors: logger.NewErrorTracker(log), now: time.Now}
}

// List stored snapshots, newest first
// @Summary Dashboard metrics
// @Tags Metrics
// @Produce json
// @Param category query string false "users, chats, culture, tourism"
// @Param skip query int false "offset"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]string
// @Router /api/v1/database/metrics [get]
func (h *Handler) List(c *gin.Context) {
	p, ok := common.BindPagination(c, h.errors)
	if !ok {
		return
	}
	rows, err := h.store.ListDashboardMetrics(c.Request.Context(), c.Query("category"), p)
	if err != nil {
		common.DatabaseFailed(c, h.errors, "list_dashboard_metrics", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": rows})
}

// Snapshot records today's counts, replacing an earlier snapshot of the same day
// @Summary Take dashboard snapshot
// @Tags Metrics
// @Produce json
// @Param at query string false "snapshot time (RFC3339)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/database/metrics/snapshot [post]
func (h *Handler) Snapshot(c *gin.Context) {
	var q SnapshotQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	at := h.now()
	if q.At != "" {
		t, err := time.Parse(time.RFC3339, q.At)
		if err != nil {
			common.ValidationFailed(c, h.errors, err)
			return
		}
		at = t
	}

	n, err := h.store.SnapshotDashboardMetrics(c.Request.Context(), at)
	if err != nil {
		common.DatabaseFailed(c, h.errors, "snapshot_dashboard_metrics", err)
		return
	}
	h.log.WithContext(c.Request.Context()).Info("Dashboard metrics snapshot stored",
		zap.Int("metrics", n),
		zap.Time("at", at.UTC()),
	)
	c.JSON(http.StatusOK, gin.H{"status": "success", "metrics_recorded": n, "date": at.UTC().Format("2006-01-02")})
}
