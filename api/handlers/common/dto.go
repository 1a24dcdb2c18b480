// Package common holds request binding and error reply helpers shared by
// the route handlers.
package common

import (
	"net/http"

	core "github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"

	"github.com/gin-gonic/gin"
)

// StatusResponse generic acknowledgement
type StatusResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// BindPagination reads skip/limit from the query. On failure a 400 has
// already been written.
func BindPagination(c *gin.Context, tracker *logger.ErrorTracker) (core.Pagination, bool) {
	var p core.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		ValidationFailed(c, tracker, err)
		return p, false
	}
	return p.Normalize(), true
}

// ValidationFailed logs rejected client input and answers 400
func ValidationFailed(c *gin.Context, tracker *logger.ErrorTracker, err error) {
	tracker.LogValidationError(err, map[string]interface{}{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
		"query":  c.Request.URL.RawQuery,
	})
	core.ResponseBadRequest(c, err.Error())
}

// DatabaseFailed logs a persistence failure and answers 500
func DatabaseFailed(c *gin.Context, tracker *logger.ErrorTracker, operation string, err error) {
	tracker.LogDatabaseError(err, operation)
	core.ResponseDetail(c, http.StatusInternalServerError, "Database error: "+err.Error())
}
