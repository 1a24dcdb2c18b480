package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	core "github.com/Harshitjoshi133/DeepShiva/internal/common"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	snapshots []time.Time
	category  string
	page      core.Pagination
	err       error
}

func (f *fakeStore) SnapshotDashboardMetrics(_ context.Context, at time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.snapshots = append(f.snapshots, at)
	return 5, nil
}

func (f *fakeStore) ListDashboardMetrics(_ context.Context, category string, p core.Pagination) ([]models.DashboardMetric, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.category, f.page = category, p
	return []models.DashboardMetric{{ID: 1, MetricName: "Total Users", MetricValue: 3, MetricType: "count", Category: "users"}}, nil
}

func newRouter(t *testing.T, s Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logs, err := logger.NewManager(logger.Config{Environment: "testing", Dir: t.TempDir(), Console: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logs.Close() })

	h := NewHandler(s, logs)
	h.now = func() time.Time { return time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC) }
	r := gin.New()
	r.GET("/api/v1/database/metrics", h.List)
	r.POST("/api/v1/database/metrics/snapshot", h.Snapshot)
	return r
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestList(t *testing.T) {
	s := &fakeStore{}
	r := newRouter(t, s)

	w := serve(r, http.MethodGet, "/api/v1/database/metrics?category=users&limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"metric_name":"Total Users"`)
	assert.Equal(t, "users", s.category)
	assert.Equal(t, 5, s.page.Limit)
}

func TestSnapshot(t *testing.T) {
	s := &fakeStore{}
	r := newRouter(t, s)

	w := serve(r, http.MethodPost, "/api/v1/database/metrics/snapshot")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","metrics_recorded":5,"date":"2025-05-10"}`, w.Body.String())

	w = serve(r, http.MethodPost, "/api/v1/database/metrics/snapshot?at=2025-01-02T03:04:05Z")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.snapshots, 2)
	assert.Equal(t, 2025, s.snapshots[1].Year())
	assert.Equal(t, time.January, s.snapshots[1].Month())

	assert.Equal(t, http.StatusBadRequest, serve(r, http.MethodPost, "/api/v1/database/metrics/snapshot?at=yesterday").Code)
}

func TestStoreFailure(t *testing.T) {
	r := newRouter(t, &fakeStore{err: errors.New("disk I/O error")})

	w := serve(r, http.MethodGet, "/api/v1/database/metrics")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Database error: disk I/O error"}`, w.Body.String())
}
