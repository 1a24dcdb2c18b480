package main

// @title Deep-Shiva API
// @version 1.0.0
// @description Backend API for the Uttarakhand tourism chatbot
// @BasePath /
// @schemes http https

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Harshitjoshi133/DeepShiva/api"
	docs "github.com/Harshitjoshi133/DeepShiva/api/docs"
	"github.com/Harshitjoshi133/DeepShiva/internal/config"
	"github.com/Harshitjoshi133/DeepShiva/internal/infra"
	"github.com/Harshitjoshi133/DeepShiva/internal/logger"
	"github.com/Harshitjoshi133/DeepShiva/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	loadEnvFile()

	envFlag := flag.String("env", "", "environment: development, production, testing (default $APP_ENV or development)")
	configPath := flag.String("config", "", "explicit config file")
	flag.Parse()

	env := *envFlag
	if env == "" {
		env = os.Getenv("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	cfg, err := config.Load(env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logs, err := logger.NewManager(logConfig(cfg.Log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logging: %v\n", err)
		os.Exit(1)
	}
	defer logs.Close()

	log := logs.GetLogger("main")
	log.Info("Starting Deep-Shiva API",
		zap.String("env", env),
		zap.String("mode", cfg.Server.Mode),
		zap.String("log_dir", logs.Dir()),
	)

	if err := run(cfg, logs, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		_ = logs.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, logs *logger.Manager, log *logger.Logger) error {
	dbLog := logs.GetLogger("database")
	perf := logger.NewPerformanceLogger(dbLog, cfg.Performance.SlowAPIThresholdMs, cfg.Performance.SlowQueryThresholdMs)

	db, err := infra.OpenDatabase(&cfg.Database, dbLog, infra.NewGormZapLogger(dbLog, perf))
	if err != nil {
		return err
	}
	defer func() {
		if err := infra.CloseDatabase(db); err != nil {
			log.Error("Close database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := infra.AutoMigrate(db, dbLog, models.All()...); err != nil {
			return err
		}
	} else {
		log.Info("Auto-migration disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	container, err := api.InitContainer(ctx, cfg, logs, db, nil)
	if err != nil {
		return err
	}
	defer container.Close()

	if err := container.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Warn("Register system metrics", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)
	docs.SwaggerInfo.Version = api.APIVersion

	router := api.SetupRouter(container, api.InitHandlers(container))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	perfReport := container.Gateway.ReportPerformance()
	log.Info("Server stopped",
		zap.Int("llm_requests", perfReport.TotalRequests),
		zap.Float64("llm_success_rate", perfReport.SuccessRate),
	)
	return nil
}

func logConfig(c config.LogConfig) logger.Config {
	return logger.Config{
		Environment:   c.Environment,
		Level:         c.Level,
		Format:        c.Format,
		Dir:           c.Dir,
		MaxSizeBytes:  c.MaxSizeBytes,
		AppBackups:    c.AppBackups,
		ErrorBackups:  c.ErrorBackups,
		AccessBackups: c.AccessBackups,
		AIBackups:     c.AIBackups,
	}
}

// loadEnvFile loads the nearest .env walking up from the working directory
func loadEnvFile() {
	path := resolveEnvPath()
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", path, err)
	}
}

func resolveEnvPath() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	dir := filepath.Clean(wd)
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
