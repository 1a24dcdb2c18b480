package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Harshitjoshi133/DeepShiva/internal/ai"
	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/middleware"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"
	"github.com/Harshitjoshi133/DeepShiva/pkg/aiinterface"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type stubClient struct{}

func (stubClient) ChatCompletion(context.Context, *aiinterface.ChatCompletionRequest) (*aiinterface.ChatCompletionResponse, error) {
	return &aiinterface.ChatCompletionResponse{Content: "Namaste from the hills", Model: "gemma3:1b"}, nil
}

func (stubClient) ListModels(context.Context) ([]aiinterface.ModelInfo, error) {
	return nil, nil
}

func (stubClient) Name() string { return "stub" }
func (stubClient) Close() error { return nil }

func testConfig(limit int) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{CORSOrigins: []string{"http://localhost:5173"}},
		Security: config.SecurityConfig{
			RateLimitRequests: limit,
			RateLimitWindow:   60,
			LimiterBackend:    LimiterMemory,
			EnableMonitoring:  true,
			HealthPaths:       middleware.DefaultHealthPaths,
		},
		Performance: config.PerformanceConfig{SlowAPIThresholdMs: 2000},
		AI:          config.AIConfig{Provider: "ollama", Model: "gemma3:1b"},
	}
}

func newTestApp(t *testing.T, limit int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logs, err := logger.NewManager(logger.Config{
		Environment: "testing",
		Dir:         t.TempDir(),
		Console:     io.Discard,
		ErrorOutput: io.Discard,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = logs.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormLogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	cfg := testConfig(limit)
	gateway := ai.NewGateway(stubClient{}, logs, ai.Options{Model: cfg.AI.Model})

	container, err := InitContainer(context.Background(), cfg, logs, db, gateway)
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return SetupRouter(container, InitHandlers(container))
}

func serve(r http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSystemEndpoints(t *testing.T) {
	r := newTestApp(t, 100)

	w := serve(r, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to Deep-Shiva API","version":"1.0.0","status":"operational"}`, w.Body.String())
	assert.Empty(t, w.Header().Get(middleware.HeaderRequestID))

	w = serve(r, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = serve(r, http.MethodGet, "/ready", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready"`)

	w = serve(r, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "deep_shiva_api_requests_total")
}

func TestNotFound_CarriesCorrelationHeaders(t *testing.T) {
	r := newTestApp(t, 100)

	w := serve(r, http.MethodGet, "/api/v1/unknown", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"Not Found"}`, w.Body.String())
	assert.Len(t, w.Header().Get(middleware.HeaderRequestID), 8)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderResponseTime))
}

func TestChatQuery_EndToEnd(t *testing.T) {
	r := newTestApp(t, 100)

	body, _ := json.Marshal(gin.H{"message": "Best time to visit Kedarnath?", "user_id": "pilgrim-7"})
	w := serve(r, http.MethodPost, "/api/v1/chat/query", body, map[string]string{"Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Response  string `json:"response"`
		Success   bool   `json:"success"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Namaste from the hills", resp.Response)
	assert.True(t, resp.Success)
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), resp.RequestID)

	w = serve(r, http.MethodGet, "/api/v1/database/stats/recent-activity", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Best time to visit Kedarnath?")
}

func TestRateLimit_AppliesAcrossRoutes(t *testing.T) {
	r := newTestApp(t, 2)
	client := map[string]string{middleware.HeaderForwardedFor: "203.0.113.9"}

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/tourism/crowd-status", nil, client).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/culture/products", nil, client).Code)

	w := serve(r, http.MethodGet, "/api/v1/yoga/poses", nil, client)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	other := map[string]string{middleware.HeaderForwardedFor: "203.0.113.10"}
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/v1/yoga/poses", nil, other).Code)
}

func TestCORS(t *testing.T) {
	r := newTestApp(t, 100)

	w := serve(r, http.MethodOptions, "/api/v1/chat/query", nil, map[string]string{
		"Origin":                        "http://localhost:5173",
		"Access-Control-Request-Method": "POST",
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), middleware.HeaderRequestID)

	w = serve(r, http.MethodGet, "/api/v1/culture/products", nil, map[string]string{"Origin": "http://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDocs(t *testing.T) {
	r := newTestApp(t, 100)

	w := serve(r, http.MethodGet, "/docs", nil, nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, docsIndex, w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/docs/doc.json", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Deep-Shiva API")
	assert.Contains(t, w.Body.String(), "/api/v1/chat/query")
}
