package chat

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Harshitjoshi133/DeepShiva/api/handlers/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/ai"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/middleware"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"
	"github.com/Harshitjoshi133/DeepShiva/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errBlankInput = errors.New("message and user_id must not be blank")

// Gateway LLM operations used by the chat routes
type Gateway interface {
	Generate(ctx context.Context, req ai.Request) ai.Result
	ModelInfo(ctx context.Context) ai.ModelStatus
	CheckConnection(ctx context.Context) bool
	ReportPerformance() ai.Performance
	Provider() string
}

// Recorder persists chat exchanges
type Recorder interface {
	RecordExchange(ctx context.Context, x store.Exchange) (*models.ChatMessage, error)
}

// QueryRequest chat query body
type QueryRequest struct {
	Message  string    `json:"message" binding:"required"`
	UserID   string    `json:"user_id" binding:"required,max=50"`
	Context  string    `json:"context"`
	History  []ai.Turn `json:"history" binding:"max=50"`
	Language string    `json:"language" binding:"omitempty,max=8"`
	ChatType string    `json:"chat_type" binding:"omitempty,oneof=general tourism culture yoga emergency"`
}

// QueryResponse chat reply
type QueryResponse struct {
	Response         string  `json:"response"`
	UserID           string  `json:"user_id"`
	Model            string  `json:"model"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	Success          bool    `json:"success"`
	RequestID        string  `json:"request_id"`
}

// Handler chat routes
type Handler struct {
	gateway  Gateway
	recorder Recorder // nil skips persistence
	log      *logger.Logger
	errors   *logger.ErrorTracker
	ai       *logger.AIResponseLogger
}

// NewHandler recorder may be nil
func NewHandler(gateway Gateway, recorder Recorder, logs *logger.Manager) *Handler {
	log := logs.GetLogger("chat")
	return &Handler{
		gateway:  gateway,
		recorder: recorder,
		log:      log,
		errors:   logger.NewErrorTracker(log),
		ai:       logger.NewAIResponseLogger(logs.AIResponses()),
	}
}

// Query answers a tourist question
// @Summary Ask Deep-Shiva
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body QueryRequest true "question"
// @Success 200 {object} QueryResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/chat/query [post]
func (h *Handler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ValidationFailed(c, h.errors, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" || strings.TrimSpace(req.UserID) == "" {
		common.ValidationFailed(c, h.errors, errBlankInput)
		return
	}

	requestID := middleware.GetRequestIDFromGin(c)
	ctx := c.Request.Context()

	if len(req.History) == 0 {
		h.ai.LogConversationStart(req.UserID, requestID)
	}

	res := h.gateway.Generate(ctx, ai.Request{
		Message:   req.Message,
		UserID:    req.UserID,
		Context:   req.Context,
		History:   req.History,
		Language:  req.Language,
		RequestID: requestID,
	})

	messageID := ""
	if h.recorder != nil {
		msg, err := h.recorder.RecordExchange(ctx, store.Exchange{
			Username:  req.UserID,
			Language:  req.Language,
			ChatType:  req.ChatType,
			Message:   req.Message,
			Response:  res.Response,
			Model:     res.Model,
			RequestID: requestID,
		})
		if err != nil {
			h.errors.LogDatabaseError(err, "record_exchange")
		} else {
			messageID = strconv.FormatUint(uint64(msg.ID), 10)
		}
	}

	intent := ai.ClassifyIntent(req.Message)
	h.ai.LogConversationContext(req.UserID, messageID, requestID, contextUsed(req), nil, []string{string(intent)})

	h.log.WithContext(ctx).Info("Chat query answered",
		logger.UserID(req.UserID),
		zap.Bool("success", res.Success),
		zap.String("intent", string(intent)),
	)

	c.JSON(http.StatusOK, QueryResponse{
		Response:         res.Response,
		UserID:           req.UserID,
		Model:            res.Model,
		ProcessingTimeMs: res.ProcessingTimeMs,
		Success:          res.Success,
		RequestID:        requestID,
	})
}

// Model reports whether the configured model is available
// @Summary Model status
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/chat/model [get]
func (h *Handler) Model(c *gin.Context) {
	info := h.gateway.ModelInfo(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"provider":    h.gateway.Provider(),
		"model":       info,
		"performance": h.gateway.ReportPerformance(),
	})
}

// Health pings the LLM provider
// @Summary LLM connectivity
// @Tags Chat
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/chat/health [get]
func (h *Handler) Health(c *gin.Context) {
	if !h.gateway.CheckConnection(c.Request.Context()) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "provider": h.gateway.Provider()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "connected", "provider": h.gateway.Provider()})
}

func contextUsed(req QueryRequest) []string {
	used := []string{}
	if req.Context != "" {
		used = append(used, "request_context")
	}
	if len(req.History) > 0 {
		used = append(used, "history")
	}
	return used
}
