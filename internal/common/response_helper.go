package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody {"detail": "..."} error envelope
type ErrorBody struct {
	Detail string `json:"detail"`
}

// ResponseDetail writes an error envelope with status
func ResponseDetail(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{Detail: detail})
}

// ResponseBadRequest 400
func ResponseBadRequest(c *gin.Context, detail string) {
	ResponseDetail(c, http.StatusBadRequest, detail)
}

// ResponseNotFound 404
func ResponseNotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not Found"
	}
	ResponseDetail(c, http.StatusNotFound, detail)
}

// ResponseServerError 500
func ResponseServerError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	ResponseDetail(c, http.StatusInternalServerError, detail)
}
