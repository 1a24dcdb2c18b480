package middleware

import (
	"net/http"
	"strconv"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"
	"github.com/Harshitjoshi133/DeepShiva/internal/ratelimit"
	"github.com/Harshitjoshi133/DeepShiva/internal/security"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds advertised in rate limit responses
const RetryAfterSeconds = 60

// RateLimitResponse body of a 429
type RateLimitResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

var rateLimitResponse = RateLimitResponse{
	Error:      "Rate limit exceeded",
	Message:    "Too many requests. Please try again later.",
	RetryAfter: RetryAfterSeconds,
}

// SecurityMiddleware rejects clients over the limit and logs requests that
// match an attack signature. The request is counted before it is dispatched,
// so the limit holds even while earlier requests are still in flight.
// detector may be nil to turn pattern monitoring off.
func SecurityMiddleware(limiter ratelimit.Limiter, detector *security.Detector, secLog *logger.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		clientIP := ClientIP(c.Request)
		path := c.Request.URL.Path

		if limiter.IsLimited(ctx, clientIP) {
			secLog.LogRateLimitExceeded(clientIP, path, c.Request.Method)
			metrics.RateLimitRejectionsTotal.Inc()
			c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, rateLimitResponse)
			return
		}
		limiter.Record(ctx, clientIP)

		if detector != nil {
			if m, ok := detector.Scan(path, c.Request.URL.RawQuery); ok {
				secLog.LogSuspiciousPattern(clientIP, path, c.Request.Method, m.Pattern, flattenQuery(c.Request.URL.Query()))
				metrics.SuspiciousRequestsTotal.WithLabelValues(m.Pattern).Inc()
			}
		}

		c.Next()
	}
}
