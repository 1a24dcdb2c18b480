package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatHandlers "github.com/Harshitjoshi133/DeepShiva/api/handlers/chat"
	contentHandlers "github.com/Harshitjoshi133/DeepShiva/api/handlers/content"
	databaseHandlers "github.com/Harshitjoshi133/DeepShiva/api/handlers/database"
	metricsHandlers "github.com/Harshitjoshi133/DeepShiva/api/handlers/metrics"
	monitoringHandlers "github.com/Harshitjoshi133/DeepShiva/api/handlers/monitoring"
	"github.com/Harshitjoshi133/DeepShiva/internal/ai"
	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/internal/content"
	"github.com/Harshitjoshi133/DeepShiva/internal/infra"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/metrics"
	"github.com/Harshitjoshi133/DeepShiva/internal/monitoring"
	"github.com/Harshitjoshi133/DeepShiva/internal/ratelimit"
	"github.com/Harshitjoshi133/DeepShiva/internal/security"
	"github.com/Harshitjoshi133/DeepShiva/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Limiter backends
const (
	LimiterMemory = "memory"
	LimiterRedis  = "redis"
)

// AppContainer long-lived dependencies shared by every handler
type AppContainer struct {
	// infrastructure
	Config      *config.Config
	Logs        *logger.Manager
	DB          *gorm.DB
	RedisClient redis.UniversalClient

	// request pipeline
	Limiter  ratelimit.Limiter
	Detector *security.Detector

	// services
	Store   store.Store
	Gateway *ai.Gateway
	Catalog *content.Catalog
	Monitor *monitoring.Reader

	memoryLimiter *ratelimit.MemoryStore
}

// Handlers route handlers
type Handlers struct {
	Chat       *chatHandlers.Handler
	Content    *contentHandlers.Handler
	Database   *databaseHandlers.Handler
	Metrics    *metricsHandlers.Handler
	Monitoring *monitoringHandlers.Handler
}

// InitContainer builds every service on top of an open database.
// gateway may be nil, in which case one is built from cfg.AI.
func InitContainer(ctx context.Context, cfg *config.Config, logs *logger.Manager, db *gorm.DB, gateway *ai.Gateway) (*AppContainer, error) {
	c := &AppContainer{
		Config:  cfg,
		Logs:    logs,
		DB:      db,
		Store:   store.NewGormStore(db),
		Gateway: gateway,
		Monitor: monitoring.NewReader(logs.Dir()),
	}

	if err := c.initLimiter(ctx); err != nil {
		return nil, err
	}

	if cfg.Security.EnableMonitoring {
		c.Detector = security.NewDetector()
	}

	if c.Gateway == nil {
		if err := c.initGateway(); err != nil {
			c.Close()
			return nil, err
		}
	}

	catalog, err := content.Default()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	c.Catalog = catalog

	return c, nil
}

func (c *AppContainer) initLimiter(ctx context.Context) error {
	sec := c.Config.Security
	limiterCfg := ratelimit.Config{
		Limit:           sec.RateLimitRequests,
		Window:          sec.WindowDuration(),
		CleanupInterval: cleanupInterval(sec),
	}
	log := c.Logs.GetLogger("security")

	switch strings.ToLower(sec.LimiterBackend) {
	case LimiterRedis:
		client, err := infra.OpenRedis(ctx, &c.Config.Redis, log)
		if err != nil {
			return fmt.Errorf("redis limiter: %w", err)
		}
		c.RedisClient = client
		c.Limiter = ratelimit.NewRedisStore(client, limiterCfg, log)
	case LimiterMemory, "":
		c.memoryLimiter = ratelimit.NewMemoryStore(limiterCfg)
		c.Limiter = c.memoryLimiter
	default:
		return fmt.Errorf("unsupported limiter backend: %s", sec.LimiterBackend)
	}

	log.Info("Rate limiter initialized",
		zap.String("backend", sec.LimiterBackend),
		zap.Int("limit", sec.RateLimitRequests),
		zap.Duration("window", sec.WindowDuration()),
	)
	return nil
}

func (c *AppContainer) initGateway() error {
	client, err := ai.NewModelClient(c.Config.AI)
	if err != nil {
		return err
	}
	c.Gateway = ai.NewGateway(client, c.Logs, ai.Options{
		Model:             c.Config.AI.Model,
		Temperature:       c.Config.AI.Temperature,
		MaxTokens:         c.Config.AI.MaxTokens,
		Timeout:           c.Config.AI.TimeoutDuration(),
		RequestsPerSecond: c.Config.AI.RequestsPerSecond,
		Burst:             c.Config.AI.Burst,
	})
	return nil
}

// Close stops background work and releases clients. The database is owned
// by the caller.
func (c *AppContainer) Close() {
	if c.memoryLimiter != nil {
		c.memoryLimiter.Stop()
	}
	if c.RedisClient != nil {
		_ = c.RedisClient.Close()
	}
	if c.Gateway != nil {
		_ = c.Gateway.Close()
	}
}

// RegisterMetrics exposes pool, limiter and log directory gauges on reg
func (c *AppContainer) RegisterMetrics(reg prometheus.Registerer) error {
	src := metrics.SystemSources{
		LogDirBytes: func() int64 {
			n, _ := c.Monitor.Size()
			return n
		},
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			src.DB = sqlDB
			src.DBName = c.DB.Dialector.Name()
		}
	}
	if c.memoryLimiter != nil {
		src.TrackedClients = c.memoryLimiter.Len
	}
	return metrics.RegisterSystemCollectors(reg, src)
}

// InitHandlers wires handlers to the container
func InitHandlers(c *AppContainer) *Handlers {
	return &Handlers{
		Chat:       chatHandlers.NewHandler(c.Gateway, c.Store, c.Logs),
		Content:    contentHandlers.NewHandler(c.Catalog, c.Logs),
		Database:   databaseHandlers.NewHandler(c.Store, c.Logs),
		Metrics:    metricsHandlers.NewHandler(c.Store, c.Logs),
		Monitoring: monitoringHandlers.NewHandler(c.Monitor, c.Logs),
	}
}

func cleanupInterval(sec config.SecurityConfig) time.Duration {
	return time.Duration(sec.CleanupInterval) * time.Second
}
