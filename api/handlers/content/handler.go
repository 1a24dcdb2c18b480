// Package content serves the bundled catalog: tourism, culture, vision, yoga
// and emergency routes.
package content

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harshitjoshi133/DeepShiva/api/handlers/common"
	catalog "github.com/Harshitjoshi133/DeepShiva/internal/content"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errEmptyImage = errors.New("image must not be empty")

// Handler catalog routes
type Handler struct {
	catalog *catalog.Catalog
	log     *logger.Logger
	errors  *logger.ErrorTracker
}

// NewHandler creates the handler
func NewHandler(c *catalog.Catalog, logs *logger.Manager) *Handler {
	log := logs.GetLogger("content")
	return &Handler{catalog: c, log: log, errors: logger.NewErrorTracker(log)}
}

// CrowdStatus live crowd level at the major shrines
// @Summary Shrine crowd status
// @Tags Tourism
// @Produce json
// @Success 200 {array} catalog.CrowdStatus
// @Router /api/v1/tourism/crowd-status [get]
func (h *Handler) CrowdStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.CrowdStatus)
}

// CalculateCarbon trip footprint against an SUV baseline
// @Summary Carbon footprint
// @Tags Tourism
// @Accept json
// @Produce json
// @Param body body CarbonRequest true "trip"
// @Success 200 {object} catalog.CarbonEstimate
// @Failure 400 {object} map[string]string
// @Router /api/v1/tourism/calculate-carbon [post]
func (h *Handler) CalculateCarbon(c *gin.Context) {
	var req CarbonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	est, err := h.catalog.CarbonFootprint(*req.Distance, req.VehicleType)
	if err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

// Products local artisan products
// @Summary Artisan products
// @Tags Culture
// @Produce json
// @Success 200 {array} catalog.Product
// @Router /api/v1/culture/products [get]
func (h *Handler) Products(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Products)
}

// AnalyzePose posture feedback for an uploaded photo
// @Summary Yoga posture analysis
// @Tags Vision
// @Accept json
// @Produce json
// @Param body body VisionRequest true "image"
// @Success 200 {object} catalog.PostureFeedback
// @Failure 400 {object} map[string]string
// @Router /api/v1/vision/analyze [post]
func (h *Handler) AnalyzePose(c *gin.Context) {
	var req VisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		common.ValidationFailed(c, h.errors, errEmptyImage)
		return
	}

	fb := h.catalog.RandomPostureFeedback()
	h.log.WithContext(c.Request.Context()).Info("Posture analyzed",
		zap.Int("image_length", len(req.Image)),
		zap.String("status", fb.Status),
	)
	c.JSON(http.StatusOK, fb)
}

// YogaPoses poses, optionally by difficulty
// @Summary Yoga poses
// @Tags Yoga
// @Produce json
// @Param difficulty query string false "beginner, intermediate or advanced"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/yoga/poses [get]
func (h *Handler) YogaPoses(c *gin.Context) {
	var q PoseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"poses": h.catalog.PosesByDifficulty(q.Difficulty)})
}

// EmergencyContacts helplines, optionally by district and service type
// @Summary Emergency contacts
// @Tags Emergency
// @Produce json
// @Param district query string false "district"
// @Param service_type query string false "police, hospital, disaster_management, tourist_helpline"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/emergency/contacts [get]
func (h *Handler) EmergencyContacts(c *gin.Context) {
	var q ContactQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}

	out := make([]catalog.EmergencyContact, 0, len(h.catalog.EmergencyContacts))
	for _, ec := range h.catalog.EmergencyContacts {
		if q.District != "" && !strings.EqualFold(ec.District, q.District) {
			continue
		}
		if q.ServiceType != "" && !strings.EqualFold(ec.ServiceType, q.ServiceType) {
			continue
		}
		out = append(out, ec)
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

// FirstAid altitude and trekking first aid tips
// @Summary First aid tips
// @Tags Emergency
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/emergency/first-aid [get]
func (h *Handler) FirstAid(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tips": h.catalog.FirstAid})
}
