package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InternalErrorResponse body sent when a request fails unhandled
type InternalErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

func internalError(requestID string) InternalErrorResponse {
	return InternalErrorResponse{
		Error:     "Internal server error",
		RequestID: requestID,
		Message:   "An unexpected error occurred. Please try again later.",
	}
}

// LoggingMiddleware assigns the request id, writes start/complete access
// records, stamps correlation headers and converts downstream failures
// (panics, or handler errors with nothing written) into a generic 500.
func LoggingMiddleware(access, app *logger.Logger, slowAPIMs float64) gin.HandlerFunc {
	perf := logger.NewPerformanceLogger(app, slowAPIMs, 0)
	tracker := logger.NewErrorTracker(app)

	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request
		rc := &RequestContext{
			RequestID: NewRequestID(),
			StartTime: start,
			ClientIP:  ClientIP(req),
			Method:    req.Method,
			Path:      req.URL.Path,
			Query:     req.URL.Query(),
		}
		attachRequestContext(c, rc)

		if c.GetBool(skipAccessLogKey) {
			err := dispatch(c)
			if err != nil {
				_ = c.Error(err)
			}
			if err != nil || (len(c.Errors) > 0 && !c.Writer.Written()) {
				c.Abort()
				if !c.Writer.Written() {
					c.JSON(http.StatusInternalServerError, internalError(rc.RequestID))
				}
			}
			return
		}

		cw := newCorrelationWriter(c.Writer, rc.RequestID, start)
		c.Writer = cw
		defer func() { c.Writer = cw.ResponseWriter }()

		access.Info("Request started: "+rc.Method+" "+rc.Path,
			logger.RequestID(rc.RequestID),
			logger.Method(rc.Method),
			logger.Path(rc.Path),
			logger.QueryParams(flattenQuery(rc.Query)),
			logger.ClientIP(rc.ClientIP),
			logger.UserAgent(userAgent(req)),
			logger.EventType(logger.EventRequestStart),
		)

		recovered := dispatch(c)
		failure := recovered
		if failure == nil && len(c.Errors) > 0 && !c.Writer.Written() {
			failure = c.Errors.Last().Err
		}
		elapsed := elapsedMillis(start)

		if failure != nil {
			if recovered != nil {
				_ = c.Error(recovered)
			}
			c.Abort()
			access.Error("Request failed: "+rc.Method+" "+rc.Path,
				logger.RequestID(rc.RequestID),
				logger.Method(rc.Method),
				logger.Path(rc.Path),
				zap.String("error", failure.Error()),
				logger.ResponseTime(elapsed),
				logger.ClientIP(rc.ClientIP),
				logger.EventType(logger.EventRequestError),
			)
			tracker.LogUnhandledError(failure, map[string]interface{}{
				"method":       rc.Method,
				"path":         rc.Path,
				"query_params": flattenQuery(rc.Query),
			})
			metrics.RequestFailuresTotal.WithLabelValues(rc.Method).Inc()
			if !c.Writer.Written() {
				c.JSON(http.StatusInternalServerError, internalError(rc.RequestID))
			}
			return
		}

		c.Writer.WriteHeaderNow()
		status := c.Writer.Status()

		access.Info("Request completed: "+rc.Method+" "+rc.Path,
			logger.RequestID(rc.RequestID),
			logger.Method(rc.Method),
			logger.Path(rc.Path),
			logger.StatusCode(status),
			logger.ResponseTime(elapsed),
			logger.ClientIP(rc.ClientIP),
			logger.EventType(logger.EventRequestComplete),
		)
		perf.LogAPIPerformance(rc.Path, rc.Method, elapsed, status)
	}
}

// dispatch runs the rest of the chain and returns a recovered panic as an error
func dispatch(c *gin.Context) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r == http.ErrAbortHandler {
			panic(r)
		}
		if e, ok := r.(error); ok {
			err = fmt.Errorf("panic: %w", e)
			return
		}
		err = fmt.Errorf("panic: %v", r)
	}()
	c.Next()
	return nil
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "Unknown"
}
