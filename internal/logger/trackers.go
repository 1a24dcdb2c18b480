package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultSlowAPIMs   = 2000
	defaultSlowQueryMs = 1000
	maxQueryLogLength  = 200
)

// PerformanceLogger API and query timing records
type PerformanceLogger struct {
	log         *Logger
	slowAPIMs   float64
	slowQueryMs float64
}

// NewPerformanceLogger zero thresholds fall back to 2000ms (API) and 1000ms (query)
func NewPerformanceLogger(log *Logger, slowAPIMs, slowQueryMs float64) *PerformanceLogger {
	if slowAPIMs <= 0 {
		slowAPIMs = defaultSlowAPIMs
	}
	if slowQueryMs <= 0 {
		slowQueryMs = defaultSlowQueryMs
	}
	return &PerformanceLogger{log: log, slowAPIMs: slowAPIMs, slowQueryMs: slowQueryMs}
}

// LogAPIPerformance info record, warning above the slow API threshold
func (p *PerformanceLogger) LogAPIPerformance(endpoint, method string, durationMs float64, status int) {
	level := zapcore.InfoLevel
	if durationMs > p.slowAPIMs {
		level = zapcore.WarnLevel
	}
	p.log.Emit(level, "API call completed: "+method+" "+endpoint,
		Endpoint(endpoint),
		Method(method),
		ResponseTime(durationMs),
		StatusCode(status),
	)
}

// LogSlowQuery warns when durationMs exceeds the slow query threshold
func (p *PerformanceLogger) LogSlowQuery(query string, durationMs float64) {
	if durationMs <= p.slowQueryMs {
		return
	}
	p.log.Warn("Slow database query detected",
		zap.String("query", truncate(query, maxQueryLogLength)),
		zap.Float64("duration_ms", RoundMillis(durationMs)),
		zap.Float64("threshold_ms", p.slowQueryMs),
	)
}

// SlowQueryThreshold milliseconds
func (p *PerformanceLogger) SlowQueryThreshold() float64 {
	return p.slowQueryMs
}

// Error type tags
const (
	ErrorTypeValidation  = "ValidationError"
	ErrorTypeDatabase    = "DatabaseError"
	ErrorTypeExternalAPI = "ExternalAPIError"
	ErrorTypeUnhandled   = "UnhandledError"
)

// ErrorTracker error records tagged with error_type
type ErrorTracker struct {
	log *Logger
}

func NewErrorTracker(log *Logger) *ErrorTracker {
	return &ErrorTracker{log: log}
}

// LogValidationError client input rejected by a handler
func (t *ErrorTracker) LogValidationError(err error, requestData map[string]interface{}) {
	t.log.Warn("Validation error occurred",
		ErrorType(ErrorTypeValidation),
		zap.String("error_message", err.Error()),
		zap.Any("request_data", requestData),
	)
}

// LogUnhandledError failure caught at the middleware boundary
func (t *ErrorTracker) LogUnhandledError(err error, requestData map[string]interface{}) {
	t.log.Error("Unhandled request error",
		ErrorType(ErrorTypeUnhandled),
		zap.String("error_message", err.Error()),
		zap.Any("request_data", requestData),
	)
}

// LogDatabaseError persistence failure during operation
func (t *ErrorTracker) LogDatabaseError(err error, operation string) {
	t.log.Error("Database error during "+operation,
		ErrorType(ErrorTypeDatabase),
		zap.String("operation", operation),
		zap.String("error_message", err.Error()),
	)
}

// LogExternalAPIError failed call to an outside service
func (t *ErrorTracker) LogExternalAPIError(err error, service, endpoint string) {
	t.log.Error("External API error: "+service,
		ErrorType(ErrorTypeExternalAPI),
		zap.String("service", service),
		Endpoint(endpoint),
		zap.String("error_message", err.Error()),
	)
}

// SecurityLogger warnings tagged security_event=true
type SecurityLogger struct {
	log *Logger
}

func NewSecurityLogger(log *Logger) *SecurityLogger {
	return &SecurityLogger{log: log}
}

// LogRateLimitExceeded client rejected by the rate limiter
func (s *SecurityLogger) LogRateLimitExceeded(clientIP, path, method string) {
	s.log.Warn("Rate limit exceeded",
		ClientIP(clientIP),
		Path(path),
		Method(method),
		SecurityEvent(),
	)
}

// LogSuspiciousPattern request matched an attack signature; the request still proceeds
func (s *SecurityLogger) LogSuspiciousPattern(clientIP, path, method, pattern string, query map[string]string) {
	s.log.Warn("Suspicious request pattern detected",
		ClientIP(clientIP),
		Path(path),
		Method(method),
		zap.String("pattern", pattern),
		QueryParams(query),
		SecurityEvent(),
	)
}

// LogSuspiciousActivity free-form activity report
func (s *SecurityLogger) LogSuspiciousActivity(userID, activity string, details map[string]interface{}) {
	s.log.Warn("Suspicious activity detected: "+activity,
		UserID(userID),
		zap.String("activity", activity),
		zap.Any("details", details),
		SecurityEvent(),
	)
}

// LogAuthenticationFailure rejected credentials
func (s *SecurityLogger) LogAuthenticationFailure(userID, reason string) {
	s.log.Warn("Authentication failure",
		UserID(userID),
		zap.String("reason", reason),
		SecurityEvent(),
	)
}
