package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (*gin.Engine, *logger.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logs, err := logger.NewManager(logger.Config{Environment: "testing", Dir: t.TempDir(), Console: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logs.Close() })

	h := NewHandler(monitoring.NewReader(logs.Dir()), logs)
	r := gin.New()
	g := r.Group("/api/v1/monitoring")
	g.GET("/logs", h.Logs)
	g.GET("/stats", h.Stats)
	g.GET("/health-detailed", h.HealthDetailed)
	g.POST("/clear-logs", h.ClearLogs)
	g.GET("/performance-metrics", h.PerformanceMetrics)
	return r, logs
}

func get(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestLogs_ReturnsAppEntries(t *testing.T) {
	r, logs := newRouter(t)
	logs.GetLogger("tourism").Warn("Crowd feed stale")
	require.NoError(t, logs.Sync())

	w := get(r, http.MethodGet, "/api/v1/monitoring/logs?level=warn")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []monitoring.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "Crowd feed stale", entries[0].Message)
	assert.Equal(t, "WARN", entries[0].Level)
}

func TestLogs_Validation(t *testing.T) {
	r, _ := newRouter(t)
	assert.Equal(t, http.StatusBadRequest, get(r, http.MethodGet, "/api/v1/monitoring/logs?limit=0").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, http.MethodGet, "/api/v1/monitoring/logs?limit=1001").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, http.MethodGet, "/api/v1/monitoring/stats?hours=200").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, http.MethodPost, "/api/v1/monitoring/clear-logs?days_to_keep=31").Code)
}

func TestStatsAndPerformance_Empty(t *testing.T) {
	r, _ := newRouter(t)

	w := get(r, http.MethodGet, "/api/v1/monitoring/stats")
	require.Equal(t, http.StatusOK, w.Code)
	var st monitoring.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &st))
	assert.Zero(t, st.TotalRequests)
	assert.Empty(t, st.TopEndpoints)

	w = get(r, http.MethodGet, "/api/v1/monitoring/performance-metrics?endpoint=chat")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_requests_24h":0`)
}

func TestHealthDetailed(t *testing.T) {
	r, _ := newRouter(t)
	w := get(r, http.MethodGet, "/api/v1/monitoring/health-detailed")
	require.Equal(t, http.StatusOK, w.Code)

	var h monitoring.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &h))
	assert.Equal(t, "healthy", h.Status)
}

func TestClearLogs(t *testing.T) {
	r, logs := newRouter(t)
	old := time.Now().AddDate(0, 0, -20)
	rotated := filepath.Join(logs.Dir(), logger.AppFile+".3")
	require.NoError(t, os.WriteFile(rotated, []byte("{}\n"), 0o644))
	require.NoError(t, os.Chtimes(rotated, old, old))

	w := get(r, http.MethodPost, "/api/v1/monitoring/clear-logs?days_to_keep=7")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ClearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "Log cleanup completed. Kept logs from last 7 days.", resp.Message)
	assert.Equal(t, []string{logger.AppFile + ".3"}, resp.RemovedFiles)

	_, err := os.Stat(rotated)
	assert.True(t, os.IsNotExist(err))
}
