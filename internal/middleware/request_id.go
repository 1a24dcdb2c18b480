package middleware

import (
	"context"
	"net/url"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// gin context keys
const (
	// RequestIDKey request id
	RequestIDKey = "request_id"
	// RequestContextKey *RequestContext
	RequestContextKey = "request_context"
	// skipAccessLogKey set by the health stage for allow-listed paths
	skipAccessLogKey = "skip_access_log"
)

// HTTP headers
const (
	HeaderRequestID    = "X-Request-ID"
	HeaderResponseTime = "X-Response-Time"
	HeaderForwardedFor = "X-Forwarded-For"
	HeaderRealIP       = "X-Real-IP"
)

// RequestContext per-request metadata, discarded after the response
type RequestContext struct {
	RequestID string
	StartTime time.Time
	ClientIP  string
	Method    string
	Path      string
	Query     url.Values
}

// NewRequestID 8 character id
func NewRequestID() string {
	return uuid.New().String()[:8]
}

// attachRequestContext stores rc on the gin context and the request context
func attachRequestContext(c *gin.Context, rc *RequestContext) {
	c.Set(RequestIDKey, rc.RequestID)
	c.Set(RequestContextKey, rc)
	c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), rc.RequestID))
}

// GetRequestID request id stored in ctx
func GetRequestID(ctx context.Context) string {
	return logger.RequestIDFromContext(ctx)
}

// GetRequestIDFromGin request id assigned by the logging stage
func GetRequestIDFromGin(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// GetRequestContext metadata assigned by the logging stage
func GetRequestContext(c *gin.Context) (*RequestContext, bool) {
	v, ok := c.Get(RequestContextKey)
	if !ok {
		return nil, false
	}
	rc, ok := v.(*RequestContext)
	return rc, ok
}

// flattenQuery first value per key, as logged in access records
func flattenQuery(q url.Values) map[string]string {
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		} else {
			out[k] = ""
		}
	}
	return out
}
