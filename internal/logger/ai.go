package logger

import (
	"time"

	"go.uber.org/zap"
)

const (
	maxErrorMessageLength    = 200
	maxFallbackPreviewLength = 300
)

// AIExchange one completed model call
type AIExchange struct {
	UserID           string
	MessageID        string
	RequestID        string
	UserMessage      string
	AIResponse       string
	Model            string
	ProcessingTimeMs float64
	Language         string
	Context          string
	Success          bool
}

// AIResponseLogger conversation records on the ai_responses namespace.
// Messages and responses are logged in full.
type AIResponseLogger struct {
	log *Logger
}

func NewAIResponseLogger(log *Logger) *AIResponseLogger {
	return &AIResponseLogger{log: log}
}

// LogAIResponse full exchange
func (a *AIResponseLogger) LogAIResponse(x AIExchange) {
	a.log.Info("AI response generated",
		EventType(EventAIResponse),
		UserID(x.UserID),
		zap.String("message_id", x.MessageID),
		RequestID(x.RequestID),
		zap.String("user_message", x.UserMessage),
		zap.String("ai_response", x.AIResponse),
		zap.Int("full_user_message_length", len([]rune(x.UserMessage))),
		zap.Int("full_ai_response_length", len([]rune(x.AIResponse))),
		zap.String("model_used", x.Model),
		zap.Float64("processing_time_ms", RoundMillis(x.ProcessingTimeMs)),
		zap.String("language", x.Language),
		zap.String("context", x.Context),
		zap.Bool("success", x.Success),
	)
}

// LogConversationStart first message of a conversation
func (a *AIResponseLogger) LogConversationStart(userID, requestID string) {
	a.log.Info("Conversation started",
		EventType(EventConversationStart),
		UserID(userID),
		RequestID(requestID),
	)
}

// LogConversationContext topics and actions derived for a message
func (a *AIResponseLogger) LogConversationContext(userID, messageID, requestID string, contextUsed, suggestedActions, relatedTopics []string) {
	a.log.Info("Conversation context analyzed",
		EventType(EventConversationContext),
		UserID(userID),
		zap.String("message_id", messageID),
		RequestID(requestID),
		zap.Strings("context_used", contextUsed),
		zap.Strings("suggested_actions", suggestedActions),
		zap.Strings("related_topics", relatedTopics),
	)
}

// LogAIError failed model call and the fallback that replaced it
func (a *AIResponseLogger) LogAIError(userID, requestID, userMessage, errorMessage, fallback, model string) {
	a.log.Error("AI response failed, using fallback",
		EventType(EventAIError),
		UserID(userID),
		RequestID(requestID),
		zap.String("user_message", truncate(userMessage, maxErrorMessageLength)),
		zap.String("error_message", errorMessage),
		zap.String("fallback_response", truncate(fallback, maxFallbackPreviewLength)),
		zap.String("model_attempted", model),
	)
}

// LogModelPerformance aggregated model statistics over period
func (a *AIResponseLogger) LogModelPerformance(model string, avgResponseMs, successRate float64, total int, period time.Duration) {
	a.log.Info("Model performance metrics",
		EventType(EventModelPerformance),
		zap.String("model_name", model),
		zap.Float64("avg_response_time_ms", RoundMillis(avgResponseMs)),
		zap.Float64("success_rate", successRate),
		zap.Int("total_requests", total),
		zap.Duration("time_period", period),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
