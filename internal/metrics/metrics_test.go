package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestPrometheusMiddleware_RouteLabels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/api/v1/yoga/poses", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, "") })

	before := counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/yoga/poses", "200"))
	unmatched := counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	scrapes := counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200"))

	for _, target := range []string{"/api/v1/yoga/poses", "/wp-admin/setup.php", "/metrics"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, target, nil))
	}

	assert.Equal(t, before+1, counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/yoga/poses", "200")))
	assert.Equal(t, unmatched+1, counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")))
	assert.Equal(t, scrapes, counterValue(t, APIRequestsTotal.WithLabelValues(http.MethodGet, "/metrics", "200")))
}

func TestRecordLLMCall(t *testing.T) {
	before := counterValue(t, LLMRequestsTotal.WithLabelValues("ollama", "gemma3:1b", OutcomeFallback))
	RecordLLMCall("ollama", "gemma3:1b", OutcomeFallback, 0.25)
	assert.Equal(t, before+1, counterValue(t, LLMRequestsTotal.WithLabelValues("ollama", "gemma3:1b", OutcomeFallback)))
}

func TestRegisterSystemCollectors(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	reg := prometheus.NewRegistry()
	src := SystemSources{
		DB:             sqlDB,
		DBName:         "sqlite",
		TrackedClients: func() int { return 3 },
		LogDirBytes:    func() int64 { return 2048 },
	}
	require.NoError(t, RegisterSystemCollectors(reg, src))
	// registering again is a no-op
	require.NoError(t, RegisterSystemCollectors(reg, src))

	families, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, f := range families {
		if m := f.GetMetric(); len(m) == 1 && m[0].GetGauge() != nil {
			values[f.GetName()] = m[0].GetGauge().GetValue()
		}
	}
	assert.Equal(t, 3.0, values["deep_shiva_rate_limit_tracked_clients"])
	assert.Equal(t, 2048.0, values["deep_shiva_log_files_bytes"])
	assert.Contains(t, values, "go_sql_max_open_connections")
}
