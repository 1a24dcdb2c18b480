// Package database exposes dashboard statistics and table listings.
package database

import (
	"context"
	"net/http"

	"github.com/Harshitjoshi133/DeepShiva/api/handlers/common"
	core "github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/store"

	"github.com/gin-gonic/gin"
)

// ActivityQuery recent activity size
type ActivityQuery struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// Handler database routes
type Handler struct {
	store  store.Store
	errors *logger.ErrorTracker
}

// NewHandler creates the handler
func NewHandler(s store.Store, logs *logger.Manager) *Handler {
	return &Handler{store: s, errors: logger.NewErrorTracker(logs.GetLogger("database"))}
}

// Overview dashboard counts
// @Summary Database overview
// @Tags Database
// @Produce json
// @Success 200 {object} store.Overview
// @Failure 500 {object} map[string]string
// @Router /api/v1/database/stats/overview [get]
func (h *Handler) Overview(c *gin.Context) {
	o, err := h.store.Overview(c.Request.Context())
	if err != nil {
		common.DatabaseFailed(c, h.errors, "overview", err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// RecentActivity newest chat messages
// @Summary Recent chat activity
// @Tags Database
// @Produce json
// @Param limit query int false "1..100"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/database/stats/recent-activity [get]
func (h *Handler) RecentActivity(c *gin.Context) {
	var q ActivityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	acts, err := h.store.RecentActivity(c.Request.Context(), q.Limit)
	if err != nil {
		common.DatabaseFailed(c, h.errors, "recent_activity", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recent_activity": acts})
}

// Users
// @Summary List users
// @Tags Database
// @Produce json
// @Param skip query int false "offset"
// @Param limit query int false "page size"
// @Router /api/v1/database/users [get]
func (h *Handler) Users(c *gin.Context) {
	p, ok := common.BindPagination(c, h.errors)
	if !ok {
		return
	}
	users, err := h.store.ListUsers(c.Request.Context(), p)
	if err != nil {
		common.DatabaseFailed(c, h.errors, "list_users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CulturalSites
// @Summary List cultural sites
// @Tags Database
// @Produce json
// @Param district query string false "district"
// @Param category query string false "category"
// @Router /api/v1/database/cultural-sites [get]
func (h *Handler) CulturalSites(c *gin.Context) {
	listFiltered(h, c, "cultural_sites", h.store.ListCulturalSites)
}

// Artisans
// @Summary List artisans
// @Tags Database
// @Produce json
// @Router /api/v1/database/artisans [get]
func (h *Handler) Artisans(c *gin.Context) {
	listFiltered(h, c, "artisans", h.store.ListArtisans)
}

// ArtisanProducts
// @Summary List artisan products
// @Tags Database
// @Produce json
// @Router /api/v1/database/artisan-products [get]
func (h *Handler) ArtisanProducts(c *gin.Context) {
	listFiltered(h, c, "products", h.store.ListArtisanProducts)
}

// TourismPlaces
// @Summary List tourism places
// @Tags Database
// @Produce json
// @Router /api/v1/database/tourism-places [get]
func (h *Handler) TourismPlaces(c *gin.Context) {
	listFiltered(h, c, "tourism_places", h.store.ListTourismPlaces)
}

// YogaPoses seeded pose rows
// @Summary List yoga poses
// @Tags Database
// @Produce json
// @Router /api/v1/database/yoga-poses [get]
func (h *Handler) YogaPoses(c *gin.Context) {
	listFiltered(h, c, "yoga_poses", h.store.ListYogaPoses)
}

// EmergencyContacts seeded contact rows
// @Summary List emergency contacts
// @Tags Database
// @Produce json
// @Router /api/v1/database/emergency-contacts [get]
func (h *Handler) EmergencyContacts(c *gin.Context) {
	listFiltered(h, c, "emergency_contacts", h.store.ListEmergencyContacts)
}

// Health database connectivity
// @Summary Database health
// @Tags Database
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /api/v1/database/health [get]
func (h *Handler) Health(c *gin.Context) {
	ctx := c.Request.Context()
	fail := func(err error) {
		h.errors.LogDatabaseError(err, "health_check")
		core.ResponseServerError(c, "Database health check failed: "+err.Error())
	}
	if err := h.store.Ping(ctx); err != nil {
		fail(err)
		return
	}
	n, err := h.store.CountUsers(ctx)
	if err != nil {
		fail(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"connection":   "active",
		"sample_count": n,
		"message":      "Database is accessible and responding",
	})
}

func listFiltered[T any](h *Handler, c *gin.Context, key string, list func(context.Context, store.Filter, core.Pagination) ([]T, error)) {
	p, ok := common.BindPagination(c, h.errors)
	if !ok {
		return
	}
	var f store.Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	rows, err := list(c.Request.Context(), f, p)
	if err != nil {
		common.DatabaseFailed(c, h.errors, "list_"+key, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: rows})
}
