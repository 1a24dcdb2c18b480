package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// FormatResponseTime milliseconds with two decimals, no unit
func FormatResponseTime(ms float64) string {
	return strconv.FormatFloat(ms, 'f', 2, 64)
}

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// correlationWriter sets X-Request-ID and X-Response-Time just before the
// header block is flushed, so they reach the client whoever writes first.
type correlationWriter struct {
	gin.ResponseWriter
	requestID string
	start     time.Time
	stamped   bool
}

func newCorrelationWriter(w gin.ResponseWriter, requestID string, start time.Time) *correlationWriter {
	return &correlationWriter{ResponseWriter: w, requestID: requestID, start: start}
}

func (w *correlationWriter) stamp() {
	if w.stamped || w.ResponseWriter.Written() {
		return
	}
	w.stamped = true
	h := w.ResponseWriter.Header()
	h.Set(HeaderRequestID, w.requestID)
	h.Set(HeaderResponseTime, FormatResponseTime(elapsedMillis(w.start)))
}

func (w *correlationWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *correlationWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *correlationWriter) Write(data []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(data)
}

func (w *correlationWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

func (w *correlationWriter) Flush() {
	w.stamp()
	w.ResponseWriter.Flush()
}
