package ai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"
	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// FallbackModel model name reported when a fallback reply is returned
const FallbackModel = "fallback"

// ErrEmptyReply the provider answered with no text
var ErrEmptyReply = errors.New("model returned an empty reply")

// Turn one prior conversation message
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request gateway input
type Request struct {
	Message   string
	UserID    string
	Context   string
	History   []Turn
	Language  string
	RequestID string
}

// Result gateway output; Success is false when Response holds a fallback
type Result struct {
	Response         string         `json:"response"`
	Model            string         `json:"model"`
	ProcessingTimeMs float64        `json:"processing_time_ms"`
	Timestamp        time.Time      `json:"timestamp"`
	Success          bool           `json:"success"`
	ErrorMessage     string         `json:"error,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// Options gateway tuning
type Options struct {
	Model             string
	Temperature       float64
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables throttling
	Burst             int
}

// ModelStatus availability of the configured model
type ModelStatus struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size,omitempty"`
	ModifiedAt time.Time `json:"modified_at,omitempty"`
	Available  bool      `json:"available"`
	Error      string    `json:"error,omitempty"`
}

// Gateway wraps a ModelClient and never fails: provider errors become
// fallback replies.
type Gateway struct {
	client    aiinterface.ModelClient
	opts      Options
	limiter   *rate.Limiter
	log       *logger.Logger
	errors    *logger.ErrorTracker
	responses *logger.AIResponseLogger
	tracer    trace.Tracer
	now       func() time.Time
	started   time.Time

	mu        sync.Mutex
	calls     int
	successes int
	totalMs   float64
}

// Performance call statistics since the gateway started
type Performance struct {
	Provider      string  `json:"provider"`
	Model         string  `json:"model"`
	TotalRequests int     `json:"total_requests"`
	SuccessRate   float64 `json:"success_rate"`
	AvgResponseMs float64 `json:"avg_response_time_ms"`
	PeriodSeconds float64 `json:"period_seconds"`
}

// NewGateway creates a gateway logging to logs
func NewGateway(client aiinterface.ModelClient, logs *logger.Manager, opts Options) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	g := &Gateway{
		client:    client,
		opts:      opts,
		log:       logs.GetLogger("llm_gateway"),
		errors:    logger.NewErrorTracker(logs.GetLogger("llm_gateway")),
		responses: logger.NewAIResponseLogger(logs.AIResponses()),
		tracer:    otel.Tracer("github.com/Harshitjoshi133/DeepShiva/internal/ai"),
		now:       time.Now,
	}
	g.started = g.now()
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	g.log.Info("LLM gateway initialized",
		zap.String("provider", client.Name()),
		zap.String("model", opts.Model),
		zap.Duration("timeout", opts.Timeout),
	)
	return g
}

// Model configured model name
func (g *Gateway) Model() string {
	return g.opts.Model
}

// Provider provider name
func (g *Gateway) Provider() string {
	return g.client.Name()
}

// Generate asks the model for a reply. The returned Result always carries a
// usable Response.
func (g *Gateway) Generate(ctx context.Context, req Request) Result {
	start := g.now()
	if req.Language == "" {
		req.Language = LanguageEnglish
	}

	ctx, span := g.tracer.Start(ctx, "Gateway.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", g.client.Name()),
		attribute.String("llm.model", g.opts.Model),
		attribute.String("llm.language", req.Language),
	)

	g.log.Info("Generating AI response",
		logger.RequestID(req.RequestID),
		logger.UserID(req.UserID),
		zap.Int("message_length", len(req.Message)),
		zap.Bool("has_context", req.Context != ""),
		zap.Bool("has_history", len(req.History) > 0),
		zap.String("language", req.Language),
	)

	messages := BuildMessages(&req)
	reply, err := g.complete(ctx, messages)
	elapsed := g.now().Sub(start)
	elapsedMs := logger.RoundMillis(float64(elapsed) / float64(time.Millisecond))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "llm call failed")
		return g.fallback(req, err, elapsed, elapsedMs)
	}

	g.log.Info("AI response generated successfully",
		logger.RequestID(req.RequestID),
		logger.UserID(req.UserID),
		zap.Int("response_length", len(reply)),
		zap.Float64("processing_time_ms", elapsedMs),
		zap.String("model", g.opts.Model),
	)
	g.responses.LogAIResponse(logger.AIExchange{
		UserID:           req.UserID,
		MessageID:        g.messageID(req.UserID),
		RequestID:        req.RequestID,
		UserMessage:      req.Message,
		AIResponse:       reply,
		Model:            g.opts.Model,
		ProcessingTimeMs: elapsedMs,
		Language:         req.Language,
		Context:          req.Context,
		Success:          true,
	})
	metrics.RecordLLMCall(g.client.Name(), g.opts.Model, metrics.OutcomeSuccess, elapsed.Seconds())
	g.track(true, elapsedMs)

	return Result{
		Response:         reply,
		Model:            g.opts.Model,
		ProcessingTimeMs: elapsedMs,
		Timestamp:        g.now(),
		Success:          true,
		Metadata: map[string]any{
			"temperature":   g.opts.Temperature,
			"max_tokens":    g.opts.MaxTokens,
			"message_count": len(messages),
		},
	}
}

func (g *Gateway) complete(ctx context.Context, messages []aiinterface.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("llm throttle: %w", err)
		}
	}

	resp, err := g.client.ChatCompletion(ctx, &aiinterface.ChatCompletionRequest{
		Messages:    messages,
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyReply
	}
	return resp.Content, nil
}

func (g *Gateway) fallback(req Request, err error, elapsed time.Duration, elapsedMs float64) Result {
	reply := FallbackResponse(req.Message, req.Language)

	g.errors.LogExternalAPIError(err, g.client.Name(), "chat_completion")
	g.log.Error("AI response generation failed",
		logger.RequestID(req.RequestID),
		logger.UserID(req.UserID),
		zap.Error(err),
		zap.Float64("processing_time_ms", elapsedMs),
	)
	g.responses.LogAIError(req.UserID, req.RequestID, req.Message, err.Error(), reply, g.opts.Model)
	metrics.RecordLLMCall(g.client.Name(), g.opts.Model, metrics.OutcomeFallback, elapsed.Seconds())
	g.track(false, elapsedMs)

	return Result{
		Response:         reply,
		Model:            FallbackModel,
		ProcessingTimeMs: elapsedMs,
		Timestamp:        g.now(),
		Success:          false,
		ErrorMessage:     err.Error(),
		Metadata:         map[string]any{"fallback_used": true},
	}
}

func (g *Gateway) messageID(userID string) string {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s_%s_%s", g.client.Name(), g.now().Format("20060102_150405"), short)
}

func (g *Gateway) track(success bool, ms float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.totalMs += ms
	if success {
		g.successes++
	}
}

// ReportPerformance snapshots call statistics and writes a model_performance record
func (g *Gateway) ReportPerformance() Performance {
	g.mu.Lock()
	calls, successes, totalMs := g.calls, g.successes, g.totalMs
	g.mu.Unlock()

	period := g.now().Sub(g.started)
	p := Performance{
		Provider:      g.client.Name(),
		Model:         g.opts.Model,
		TotalRequests: calls,
		PeriodSeconds: math.Round(period.Seconds()),
	}
	if calls > 0 {
		p.SuccessRate = math.Round(float64(successes)/float64(calls)*10000) / 100
		p.AvgResponseMs = logger.RoundMillis(totalMs / float64(calls))
	}
	g.responses.LogModelPerformance(g.opts.Model, p.AvgResponseMs, p.SuccessRate, calls, period)
	return p
}

// CheckConnection reports whether the provider answers a model listing
func (g *Gateway) CheckConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	models, err := g.client.ListModels(ctx)
	if err != nil {
		g.log.Error("LLM connection failed", zap.String("provider", g.client.Name()), zap.Error(err))
		return false
	}
	g.log.Info("LLM connection successful", zap.Int("available_models", len(models)))
	return true
}

// ModelInfo looks up the configured model on the provider
func (g *Gateway) ModelInfo(ctx context.Context) ModelStatus {
	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	models, err := g.client.ListModels(ctx)
	if err != nil {
		g.errors.LogExternalAPIError(err, g.client.Name(), "model_info")
		return ModelStatus{Name: g.opts.Model, Error: err.Error()}
	}
	for _, m := range models {
		if m.Name == g.opts.Model {
			return ModelStatus{Name: m.Name, Size: m.Size, ModifiedAt: m.ModifiedAt, Available: true}
		}
	}
	g.log.Warn("Model not found", zap.String("requested_model", g.opts.Model), zap.Int("available_models", len(models)))
	return ModelStatus{Name: g.opts.Model, Error: "Model not found"}
}

// Close releases the provider client
func (g *Gateway) Close() error {
	return g.client.Close()
}
