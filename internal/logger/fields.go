package logger

import (
	"math"

	"go.uber.org/zap"
)

// Field keys shared by every sink
const (
	KeyRequestID     = "request_id"
	KeyUserID        = "user_id"
	KeyEndpoint      = "endpoint"
	KeyMethod        = "method"
	KeyPath          = "path"
	KeyStatusCode    = "status_code"
	KeyResponseTime  = "response_time_ms"
	KeyEventType     = "event_type"
	KeyErrorType     = "error_type"
	KeyClientIP      = "client_ip"
	KeyUserAgent     = "user_agent"
	KeyQueryParams   = "query_params"
	KeySecurityEvent = "security_event"
)

// Event types selecting a rendering path
const (
	EventRequestStart        = "request_start"
	EventRequestComplete     = "request_complete"
	EventRequestError        = "request_error"
	EventAIResponse          = "ai_response"
	EventConversationStart   = "conversation_start"
	EventConversationContext = "conversation_context"
	EventAIError             = "ai_error"
	EventModelPerformance    = "model_performance"
)

func RequestID(id string) zap.Field { return zap.String(KeyRequestID, id) }
func UserID(id string) zap.Field { return zap.String(KeyUserID, id) }
func Endpoint(endpoint string) zap.Field { return zap.String(KeyEndpoint, endpoint) }
func Method(method string) zap.Field { return zap.String(KeyMethod, method) }
func Path(path string) zap.Field { return zap.String(KeyPath, path) }
func StatusCode(code int) zap.Field { return zap.Int(KeyStatusCode, code) }
func EventType(event string) zap.Field { return zap.String(KeyEventType, event) }
func ErrorType(kind string) zap.Field { return zap.String(KeyErrorType, kind) }
func ClientIP(ip string) zap.Field { return zap.String(KeyClientIP, ip) }
func UserAgent(agent string) zap.Field { return zap.String(KeyUserAgent, agent) }
func SecurityEvent() zap.Field { return zap.Bool(KeySecurityEvent, true) }

// QueryParams flattened query string, first value per key
func QueryParams(q map[string]string) zap.Field {
	return zap.Any(KeyQueryParams, q)
}

// ResponseTime elapsed milliseconds rounded to two decimals
func ResponseTime(ms float64) zap.Field {
	return zap.Float64(KeyResponseTime, RoundMillis(ms))
}

// RoundMillis rounds to two decimals
func RoundMillis(ms float64) float64 {
	return math.Round(ms*100) / 100
}
